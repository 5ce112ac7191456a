package schedule

import (
	"context"
	"time"

	"tutorly/models"
)

// Service is the schedule aggregate: it owns the one-off bookings and the
// recurring exceptions, and derives the combined occurrence view on every
// read.
type Service interface {
	AllOccurrences(ctx context.Context, windowStart, windowEnd time.Time) []models.Occurrence
	DetectConflicts(ctx context.Context, candidates []models.WeeklyScheduleSlot, excludeStudentID string) []models.Conflict
	SuggestSlots(ctx context.Context, day int, preferredDuration float64) []models.SlotSuggestion

	AddBooking(ctx context.Context, booking models.Occurrence) (models.Occurrence, error)
	UpdateBooking(ctx context.Context, id string, update BookingUpdate) (models.Occurrence, error)
	DeleteBooking(ctx context.Context, id string) error

	AddException(ctx context.Context, exception models.RecurringException) (models.RecurringException, error)
	RemoveException(ctx context.Context, id string) error
}

// BookingUpdate is a partial update of a one-off booking; nil fields are
// left untouched.
type BookingUpdate struct {
	Title     *string  `json:"title,omitempty"`
	Subtitle  *string  `json:"subtitle,omitempty"`
	Date      *string  `json:"date,omitempty"`
	StartTime *float64 `json:"startTime,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
	StudentID *string  `json:"studentId,omitempty"`
	Color     *string  `json:"color,omitempty"`
}

// TransactionRetractor is the earnings-side collaborator DeleteBooking uses
// to cascade: it must remove every transaction and processed key derived
// from the booking before the booking itself disappears.
type TransactionRetractor interface {
	RetractBookingTransactions(ctx context.Context, bookingID string) error
}
