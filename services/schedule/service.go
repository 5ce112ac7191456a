package schedule

import (
	"context"
	"fmt"
	"time"

	"tutorly/database/repository"
	"tutorly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UIWindowDays is the half-width of the occurrence window UI-adjacent reads
// use: 30 days either side of today.
const UIWindowDays = 30

// DefaultScheduleService is the production schedule aggregate.
type DefaultScheduleService struct {
	Repo      repository.StateRepository
	Retractor TransactionRetractor
	Logger    *zap.Logger

	// Now is replaceable by tests; defaults to time.Now.
	Now func() time.Time
}

func NewScheduleService(repo repository.StateRepository, retractor TransactionRetractor, logger *zap.Logger) *DefaultScheduleService {
	return &DefaultScheduleService{
		Repo:      repo,
		Retractor: retractor,
		Logger:    logger,
		Now:       time.Now,
	}
}

// AllOccurrences derives the combined view: stored one-off bookings plus the
// recurring occurrences materialized for the window. Recomputed on every
// call so it can never go stale relative to student or exception edits.
func (s *DefaultScheduleService) AllOccurrences(ctx context.Context, windowStart, windowEnd time.Time) []models.Occurrence {
	bookings := s.Repo.Bookings(ctx)
	recurring := Materialize(s.Repo.Students(ctx), s.Repo.Exceptions(ctx), windowStart, windowEnd)
	return append(bookings, recurring...)
}

func (s *DefaultScheduleService) uiWindow(ctx context.Context) []models.Occurrence {
	now := s.Now()
	return s.AllOccurrences(ctx, now.AddDate(0, 0, -UIWindowDays), now.AddDate(0, 0, UIWindowDays))
}

func (s *DefaultScheduleService) DetectConflicts(ctx context.Context, candidates []models.WeeklyScheduleSlot, excludeStudentID string) []models.Conflict {
	return DetectConflicts(candidates, s.uiWindow(ctx), excludeStudentID)
}

func (s *DefaultScheduleService) SuggestSlots(ctx context.Context, day int, preferredDuration float64) []models.SlotSuggestion {
	return SuggestAvailableSlots(day, s.uiWindow(ctx), preferredDuration)
}

func (s *DefaultScheduleService) AddBooking(ctx context.Context, booking models.Occurrence) (models.Occurrence, error) {
	if booking.ID == "" {
		booking.ID = "lesson-" + uuid.NewString()
	}
	booking.Provenance = models.ProvenanceOneOff
	booking.RecurrenceRuleID = ""
	if day, ok := dayOf(booking.Date); ok {
		booking.Day = day
	}

	bookings := s.Repo.Bookings(ctx)
	for _, b := range bookings {
		if b.ID == booking.ID {
			return models.Occurrence{}, fmt.Errorf("booking %q already exists", booking.ID)
		}
	}
	bookings = append(bookings, booking)
	if err := s.Repo.SaveBookings(ctx, bookings); err != nil {
		return models.Occurrence{}, fmt.Errorf("saving bookings: %w", err)
	}
	s.Logger.Info("booking added", zap.String("id", booking.ID), zap.String("date", booking.Date))
	return booking, nil
}

func (s *DefaultScheduleService) UpdateBooking(ctx context.Context, id string, update BookingUpdate) (models.Occurrence, error) {
	bookings := s.Repo.Bookings(ctx)
	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		b := &bookings[i]
		if update.Title != nil {
			b.Title = *update.Title
		}
		if update.Subtitle != nil {
			b.Subtitle = *update.Subtitle
		}
		if update.Date != nil {
			b.Date = *update.Date
		}
		if update.StartTime != nil {
			b.StartTime = *update.StartTime
		}
		if update.Duration != nil {
			b.Duration = *update.Duration
		}
		if update.StudentID != nil {
			b.StudentID = *update.StudentID
		}
		if update.Color != nil {
			b.Color = *update.Color
		}
		if day, ok := dayOf(b.Date); ok {
			b.Day = day
		}
		if err := s.Repo.SaveBookings(ctx, bookings); err != nil {
			return models.Occurrence{}, fmt.Errorf("saving bookings: %w", err)
		}
		return *b, nil
	}
	return models.Occurrence{}, ErrBookingNotFound
}

// DeleteBooking removes a one-off booking, retracting its derived
// transactions and processed keys first so a later accrual pass cannot
// resurrect them. Recurring-derived occurrence ids are rejected.
func (s *DefaultScheduleService) DeleteBooking(ctx context.Context, id string) error {
	bookings := s.Repo.Bookings(ctx)
	idx := -1
	for i, b := range bookings {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		if s.isRecurringDerived(ctx, id) {
			return ErrCannotDeleteRecurring
		}
		return ErrBookingNotFound
	}

	if s.Retractor != nil {
		if err := s.Retractor.RetractBookingTransactions(ctx, id); err != nil {
			return fmt.Errorf("retracting transactions for booking %q: %w", id, err)
		}
	}

	bookings = append(bookings[:idx], bookings[idx+1:]...)
	if err := s.Repo.SaveBookings(ctx, bookings); err != nil {
		return fmt.Errorf("saving bookings: %w", err)
	}
	s.Logger.Info("booking deleted", zap.String("id", id))
	return nil
}

// isRecurringDerived classifies an unknown id by provenance: it matches
// either a materialized instance id or a rule id within the UI window.
func (s *DefaultScheduleService) isRecurringDerived(ctx context.Context, id string) bool {
	for _, occ := range s.uiWindow(ctx) {
		if !occ.IsRecurring() {
			continue
		}
		if occ.ID == id || occ.RecurrenceRuleID == id {
			return true
		}
	}
	return false
}

func (s *DefaultScheduleService) AddException(ctx context.Context, exception models.RecurringException) (models.RecurringException, error) {
	if exception.ID == "" {
		exception.ID = "exception-" + uuid.NewString()
	}
	exceptions := s.Repo.Exceptions(ctx)
	for _, ex := range exceptions {
		if ex.ID == exception.ID {
			return models.RecurringException{}, fmt.Errorf("exception %q already exists", exception.ID)
		}
	}
	exceptions = append(exceptions, exception)
	if err := s.Repo.SaveExceptions(ctx, exceptions); err != nil {
		return models.RecurringException{}, fmt.Errorf("saving exceptions: %w", err)
	}
	s.Logger.Info("exception added",
		zap.String("id", exception.ID),
		zap.String("rule", exception.RecurrenceRuleID),
		zap.String("date", exception.Date),
		zap.String("type", string(exception.Type)))
	return exception, nil
}

func (s *DefaultScheduleService) RemoveException(ctx context.Context, id string) error {
	exceptions := s.Repo.Exceptions(ctx)
	for i, ex := range exceptions {
		if ex.ID == id {
			exceptions = append(exceptions[:i], exceptions[i+1:]...)
			if err := s.Repo.SaveExceptions(ctx, exceptions); err != nil {
				return fmt.Errorf("saving exceptions: %w", err)
			}
			return nil
		}
	}
	return ErrExceptionNotFound
}

func dayOf(date string) (int, bool) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return 0, false
	}
	return models.DayOfWeek(d), true
}
