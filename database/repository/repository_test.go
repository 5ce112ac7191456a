package repository

import (
	"context"
	"testing"
	"time"

	"tutorly/database"
	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) (*DefaultStateRepo, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	return NewStateRepo(store, zap.NewNop()), store
}

func TestLoadsAreTotal(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	// Missing keys read as empty collections.
	assert.Empty(t, repo.Students(ctx))
	assert.Empty(t, repo.Bookings(ctx))
	assert.Empty(t, repo.Exceptions(ctx))
	assert.Empty(t, repo.Transactions(ctx))
	assert.Empty(t, repo.ProcessedKeys(ctx))

	// So do malformed blobs.
	require.NoError(t, store.Save(ctx, KeyStudents, []byte("{not json")))
	require.NoError(t, store.Save(ctx, KeyProcessedKeys, []byte(`{"wrong":"shape"}`)))
	assert.Empty(t, repo.Students(ctx))
	assert.Empty(t, repo.ProcessedKeys(ctx))
}

func TestStudentsRoundtrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	students := []models.Student{{
		ID:           "student-1",
		Name:         "John Smith",
		Status:       models.StudentActive,
		PricePerHour: 60,
		WeeklySchedule: []models.WeeklyScheduleSlot{
			{Day: 2, StartTime: 16, Duration: 1},
		},
	}}
	require.NoError(t, repo.SaveStudents(ctx, students))
	assert.Equal(t, students, repo.Students(ctx))
}

func TestBookingsLoadForcesOneOffProvenance(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveBookings(ctx, []models.Occurrence{{
		ID:         "lesson-1",
		Provenance: models.ProvenanceRecurring, // stale tag in the stored blob
		Date:       "2025-06-04",
		StartTime:  9,
		Duration:   1,
	}}))

	loaded := repo.Bookings(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, models.ProvenanceOneOff, loaded[0].Provenance)
}

func TestSaveEarningsPersistsThePairTogether(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	txs := []models.Transaction{{ID: "transaction-lesson-1-42", Date: "2025-06-04", Amount: 60}}
	keys := map[string]struct{}{
		models.ProcessedKey("lesson-1", "2025-06-04"): {},
		models.ProcessedKey("lesson-2", "2025-06-03"): {},
	}
	require.NoError(t, repo.SaveEarnings(ctx, txs, keys))

	assert.Equal(t, txs, repo.Transactions(ctx))
	assert.Equal(t, keys, repo.ProcessedKeys(ctx))

	// Clearing the pair persists too.
	require.NoError(t, repo.SaveEarnings(ctx, nil, nil))
	assert.Empty(t, repo.Transactions(ctx))
	assert.Empty(t, repo.ProcessedKeys(ctx))
}

func TestSeedDemoDataOnlyOnEmptyStore(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SeedDemoData(ctx, now))
	students := repo.Students(ctx)
	require.NotEmpty(t, students)
	assert.NotEmpty(t, repo.Bookings(ctx))

	// Seeding again must not clobber user edits.
	students[0].Name = "Renamed"
	require.NoError(t, repo.SaveStudents(ctx, students))
	require.NoError(t, repo.SeedDemoData(ctx, now))
	assert.Equal(t, "Renamed", repo.Students(ctx)[0].Name)
}
