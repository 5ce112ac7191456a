package earnings

import (
	"context"
	"testing"
	"time"

	"tutorly/database"
	"tutorly/database/repository"
	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEarnings(t *testing.T) (*DefaultEarningsService, repository.StateRepository) {
	t.Helper()
	repo := repository.NewStateRepo(database.NewMemoryStore(), zap.NewNop())
	return NewEarningsService(repo, zap.NewNop()), repo
}

func TestRunAccrualPassPersistsResults(t *testing.T) {
	svc, repo := newTestEarnings(t)
	ctx := context.Background()

	student := pricedStudent()
	student.WeeklySchedule = nil
	require.NoError(t, repo.SaveStudents(ctx, []models.Student{student}))
	require.NoError(t, repo.SaveBookings(ctx, []models.Occurrence{
		oneOffBooking("lesson-1", "2025-06-04", 9, 1),
	}))

	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	result, err := svc.RunAccrualPass(ctx, now)
	require.NoError(t, err)
	require.Len(t, result.NewTransactions, 1)

	assert.Len(t, repo.Transactions(ctx), 1)
	assert.Contains(t, repo.ProcessedKeys(ctx), models.ProcessedKey("lesson-1", "2025-06-04"))

	// A second pass reads the persisted ledger and finds nothing to bill.
	again, err := svc.RunAccrualPass(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, again.NewTransactions)
	assert.Len(t, repo.Transactions(ctx), 1)
}

func TestRetractBookingCascade(t *testing.T) {
	svc, repo := newTestEarnings(t)
	ctx := context.Background()

	student := pricedStudent()
	student.WeeklySchedule = nil
	require.NoError(t, repo.SaveStudents(ctx, []models.Student{student}))
	require.NoError(t, repo.SaveBookings(ctx, []models.Occurrence{
		oneOffBooking("lesson-1", "2025-06-04", 9, 1),
	}))

	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	_, err := svc.RunAccrualPass(ctx, now)
	require.NoError(t, err)

	manual, err := svc.AddManualTransaction(ctx, models.Transaction{
		Date: "2025-06-01", Student: "Walk-in", Amount: 30, Duration: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RetractBookingTransactions(ctx, "lesson-1"))

	txs := repo.Transactions(ctx)
	require.Len(t, txs, 1, "only the manual transaction survives")
	assert.Equal(t, manual.ID, txs[0].ID)
	assert.NotContains(t, repo.ProcessedKeys(ctx), models.ProcessedKey("lesson-1", "2025-06-04"))

	// With booking, transaction and key all gone, a later pass does not
	// resurrect the lesson.
	require.NoError(t, repo.SaveBookings(ctx, nil))
	result, err := svc.RunAccrualPass(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, result.NewTransactions)
}

func TestManualTransactionLifecycle(t *testing.T) {
	svc, repo := newTestEarnings(t)
	ctx := context.Background()

	tx, err := svc.AddManualTransaction(ctx, models.Transaction{
		Date: "2025-06-01", Student: "Walk-in", Amount: 30, Duration: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, models.TransactionPaid, tx.Status)
	assert.False(t, tx.DerivedFrom("lesson-1"), "manual ids live outside the derived namespace")

	require.NoError(t, svc.RemoveTransaction(ctx, tx.ID))
	assert.Empty(t, repo.Transactions(ctx))

	assert.ErrorIs(t, svc.RemoveTransaction(ctx, tx.ID), ErrTransactionNotFound)
}
