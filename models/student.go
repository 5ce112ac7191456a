package models

import "fmt"

// StudentStatus drives whether a student's weekly pattern is materialized.
type StudentStatus string

const (
	StudentActive StudentStatus = "Active"
	StudentPaused StudentStatus = "Paused"
	StudentAtRisk StudentStatus = "Risk"
)

// WeeklyScheduleSlot is one weekly recurring lesson template attached to a
// student: day of week (0 = Monday .. 6 = Sunday), start time in decimal
// hours (14.5 = 2:30 PM) and duration in hours. The slice on the student is
// replaced wholesale on edit; slots are never mutated in place.
type WeeklyScheduleSlot struct {
	Day       int     `json:"day" bson:"day"`
	StartTime float64 `json:"startTime" bson:"startTime"`
	Duration  float64 `json:"duration" bson:"duration"`
}

// Student is a tutee. PricePerHour <= 0 means pricing has not been set; the
// accrual engine silently skips such students.
type Student struct {
	ID             string               `json:"id" bson:"id"`
	Initials       string               `json:"initials" bson:"initials"`
	Name           string               `json:"name" bson:"name"`
	Subject        string               `json:"subject" bson:"subject"`
	Progress       string               `json:"progress,omitempty" bson:"progress,omitempty"`
	NextSession    string               `json:"nextSession,omitempty" bson:"nextSession,omitempty"`
	Status         StudentStatus        `json:"status" bson:"status"`
	Joined         string               `json:"joined,omitempty" bson:"joined,omitempty"`
	Color          string               `json:"color,omitempty" bson:"color,omitempty"`
	WeeklySchedule []WeeklyScheduleSlot `json:"weeklySchedule,omitempty" bson:"weeklySchedule,omitempty"`
	PricePerHour   float64              `json:"pricePerHour,omitempty" bson:"pricePerHour,omitempty"`
}

// HasPricing reports whether accrual may bill this student's lessons.
func (s Student) HasPricing() bool {
	return s.PricePerHour > 0
}

// RuleID derives the deterministic recurrence-rule identity for one of a
// student's weekly slots. It depends only on the student, the slot's day and
// the slot's position in the list, so the same slot yields the same rule id
// across recomputation and across restarts.
func RuleID(studentID string, day, slotIndex int) string {
	return fmt.Sprintf("recurring-%s-%d-%d", studentID, day, slotIndex)
}
