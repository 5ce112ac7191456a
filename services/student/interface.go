package student

import (
	"context"

	"tutorly/models"
)

// Service manages the student roster. Pattern and status edits take effect
// on the next schedule read; nothing is cached.
type Service interface {
	List(ctx context.Context) []models.Student
	Get(ctx context.Context, id string) (models.Student, error)
	Add(ctx context.Context, s models.Student) (models.Student, error)
	Update(ctx context.Context, id string, update Update) (models.Student, error)
	Remove(ctx context.Context, id string) error
}

// Update is a partial student update; nil fields are left untouched. A
// non-nil WeeklySchedule replaces the slot list wholesale.
type Update struct {
	Initials       *string                      `json:"initials,omitempty"`
	Name           *string                      `json:"name,omitempty"`
	Subject        *string                      `json:"subject,omitempty"`
	Progress       *string                      `json:"progress,omitempty"`
	NextSession    *string                      `json:"nextSession,omitempty"`
	Status         *models.StudentStatus        `json:"status,omitempty"`
	Color          *string                      `json:"color,omitempty"`
	WeeklySchedule *[]models.WeeklyScheduleSlot `json:"weeklySchedule,omitempty"`
	PricePerHour   *float64                     `json:"pricePerHour,omitempty"`
}
