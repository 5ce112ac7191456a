package repository

import (
	"context"
	"encoding/json"

	"tutorly/database"
	"tutorly/models"

	"go.uber.org/zap"
)

// Blob-store keys for the five persisted collections.
const (
	KeyStudents      = "tutorly_students"
	KeyBookings      = "tutorly_scheduleItems"
	KeyExceptions    = "tutorly_recurringExceptions"
	KeyTransactions  = "tutorly_transactions"
	KeyProcessedKeys = "tutorly_processedLessons"
)

// StateRepository is the typed view over the blob store. Loads are total:
// a missing key, a store error or a malformed blob all read as the empty
// collection (logged, never surfaced), per the engine's error taxonomy.
type StateRepository interface {
	Students(ctx context.Context) []models.Student
	SaveStudents(ctx context.Context, students []models.Student) error

	Bookings(ctx context.Context) []models.Occurrence
	SaveBookings(ctx context.Context, bookings []models.Occurrence) error

	Exceptions(ctx context.Context) []models.RecurringException
	SaveExceptions(ctx context.Context, exceptions []models.RecurringException) error

	Transactions(ctx context.Context) []models.Transaction
	ProcessedKeys(ctx context.Context) map[string]struct{}
	// SaveEarnings persists the transaction list and the processed-key set
	// together; the two move as one value.
	SaveEarnings(ctx context.Context, txs []models.Transaction, keys map[string]struct{}) error
}

// DefaultStateRepo implements StateRepository over any database.Store.
type DefaultStateRepo struct {
	Store  database.Store
	Logger *zap.Logger
}

func NewStateRepo(store database.Store, logger *zap.Logger) *DefaultStateRepo {
	return &DefaultStateRepo{Store: store, Logger: logger}
}

// loadJSON decodes the blob at key into out, leaving out untouched when the
// key is absent or the blob is unreadable.
func (r *DefaultStateRepo) loadJSON(ctx context.Context, key string, out any) {
	data, err := r.Store.Load(ctx, key)
	if err != nil {
		r.Logger.Warn("state load failed, treating as empty",
			zap.String("key", key), zap.Error(err))
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		r.Logger.Warn("malformed state blob, treating as empty",
			zap.String("key", key), zap.Error(err))
	}
}

func (r *DefaultStateRepo) saveJSON(ctx context.Context, key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return r.Store.Save(ctx, key, data)
}
