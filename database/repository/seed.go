package repository

import (
	"context"
	"time"

	"tutorly/models"

	"github.com/google/uuid"
)

// DemoStudents is the starter dataset offered to new installs.
func DemoStudents() []models.Student {
	return []models.Student{
		{
			ID: "student-" + uuid.NewString(), Initials: "JS", Name: "John Smith",
			Subject: "Mathematics", Progress: "Excellent", Status: models.StudentActive,
			Joined: "2024-01-15", Color: "primary", PricePerHour: 75,
			WeeklySchedule: []models.WeeklyScheduleSlot{
				{Day: 1, StartTime: 14, Duration: 1.5},
				{Day: 3, StartTime: 16, Duration: 1.5},
			},
		},
		{
			ID: "student-" + uuid.NewString(), Initials: "EJ", Name: "Emily Johnson",
			Subject: "Physics", Progress: "Good", Status: models.StudentActive,
			Joined: "2024-02-01", Color: "blue", PricePerHour: 80,
			WeeklySchedule: []models.WeeklyScheduleSlot{
				{Day: 0, StartTime: 10, Duration: 2},
				{Day: 4, StartTime: 14, Duration: 2},
			},
		},
		{
			ID: "student-" + uuid.NewString(), Initials: "MW", Name: "Michael Williams",
			Subject: "Chemistry", Progress: "Excellent", Status: models.StudentActive,
			Joined: "2024-01-20", Color: "amber", PricePerHour: 70,
			WeeklySchedule: []models.WeeklyScheduleSlot{
				{Day: 2, StartTime: 15, Duration: 1},
				{Day: 5, StartTime: 11, Duration: 1.5},
			},
		},
		{
			ID: "student-" + uuid.NewString(), Initials: "SB", Name: "Sarah Brown",
			Subject: "Biology", Progress: "Good", Status: models.StudentPaused,
			Joined: "2024-02-10", Color: "stone", PricePerHour: 65,
			WeeklySchedule: []models.WeeklyScheduleSlot{
				{Day: 1, StartTime: 9, Duration: 1},
			},
		},
	}
}

// DemoBookings builds one-off lessons around now: a few already finished so
// the first accrual pass has something to bill, one upcoming.
func DemoBookings(now time.Time, students []models.Student) []models.Occurrence {
	booking := func(s models.Student, daysFromNow int, startTime, duration float64) models.Occurrence {
		date := now.AddDate(0, 0, daysFromNow)
		return models.Occurrence{
			ID:         "lesson-" + uuid.NewString(),
			Provenance: models.ProvenanceOneOff,
			Title:      s.Name,
			Subtitle:   s.Subject,
			Day:        models.DayOfWeek(date),
			StartTime:  startTime,
			Duration:   duration,
			Color:      s.Color,
			Date:       date.Format(models.DateLayout),
			StudentID:  s.ID,
		}
	}
	if len(students) < 3 {
		return nil
	}
	return []models.Occurrence{
		booking(students[0], -5, 15, 1.5),
		booking(students[1], -7, 11, 2),
		booking(students[2], -10, 10, 1),
		booking(students[0], 3, 10, 1.5),
	}
}

// SeedDemoData loads the demo dataset, but only when no student data exists
// yet. Transactions are left empty so the first accrual pass derives them.
func (r *DefaultStateRepo) SeedDemoData(ctx context.Context, now time.Time) error {
	existing, err := r.Store.Load(ctx, KeyStudents)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	students := DemoStudents()
	if err := r.SaveStudents(ctx, students); err != nil {
		return err
	}
	return r.SaveBookings(ctx, DemoBookings(now, students))
}
