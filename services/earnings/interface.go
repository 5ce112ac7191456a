package earnings

import (
	"context"
	"time"

	"tutorly/models"
)

// Service is the earnings engine: accrual of completed lessons into
// transactions, manual transaction management, cascade retraction and
// summaries.
type Service interface {
	// RunAccrualPass evaluates the current state at now and persists any
	// newly billed lessons. Idempotent: with no newly completed lessons the
	// result carries no new transactions.
	RunAccrualPass(ctx context.Context, now time.Time) (PassResult, error)

	Transactions(ctx context.Context) []models.Transaction
	AddManualTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	RemoveTransaction(ctx context.Context, id string) error

	// RetractBookingTransactions removes every transaction and processed
	// key derived from the booking. Invoked by the booking-deletion path
	// before the booking itself is removed.
	RetractBookingTransactions(ctx context.Context, bookingID string) error

	Summary(ctx context.Context, now time.Time) Summary
}
