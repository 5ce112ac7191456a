package earnings

import (
	"testing"
	"time"

	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricedStudent() models.Student {
	return models.Student{
		ID:           "student-1",
		Name:         "John Smith",
		Initials:     "JS",
		Subject:      "Mathematics",
		Status:       models.StudentActive,
		Color:        "amber",
		PricePerHour: 60,
		WeeklySchedule: []models.WeeklyScheduleSlot{
			{Day: 2, StartTime: 16, Duration: 1},
		},
	}
}

func oneOffBooking(id, date string, start, duration float64) models.Occurrence {
	return models.Occurrence{
		ID:         id,
		Provenance: models.ProvenanceOneOff,
		Title:      "Extra lesson",
		StartTime:  start,
		Duration:   duration,
		Date:       date,
		StudentID:  "student-1",
	}
}

func TestRunPassBillsCompletedOneOff(t *testing.T) {
	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	student := pricedStudent()
	student.WeeklySchedule = nil

	result := RunPass(Snapshot{
		Students: []models.Student{student},
		Bookings: []models.Occurrence{oneOffBooking("lesson-1", "2025-06-04", 9, 1.5)},
	}, now)

	require.Len(t, result.NewTransactions, 1)
	tx := result.NewTransactions[0]
	assert.Equal(t, "2025-06-04", tx.Date)
	assert.Equal(t, 90.0, tx.Amount, "1.5h at $60/h")
	assert.Equal(t, 1.5, tx.Duration)
	assert.Equal(t, "John Smith", tx.Student)
	assert.Equal(t, models.TransactionPaid, tx.Status)
	assert.True(t, tx.DerivedFrom("lesson-1"))

	_, done := result.ProcessedKeys[models.ProcessedKey("lesson-1", "2025-06-04")]
	assert.True(t, done)
}

func TestRunPassIsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Students: []models.Student{pricedStudent()},
		Bookings: []models.Occurrence{oneOffBooking("lesson-1", "2025-06-04", 9, 1)},
	}

	first := RunPass(snap, now)
	require.NotEmpty(t, first.NewTransactions)

	snap.Transactions = first.Transactions
	snap.ProcessedKeys = first.ProcessedKeys
	second := RunPass(snap, now.Add(time.Hour))

	assert.Empty(t, second.NewTransactions)
	assert.Equal(t, first.Transactions, second.Transactions)
	assert.Equal(t, first.ProcessedKeys, second.ProcessedKeys)
}

func TestRunPassCompletionBoundaryIsStrict(t *testing.T) {
	student := pricedStudent()
	student.WeeklySchedule = nil
	snap := Snapshot{
		Students: []models.Student{student},
		// Ends exactly at 2025-06-04 17:00 UTC.
		Bookings: []models.Occurrence{oneOffBooking("lesson-1", "2025-06-04", 16, 1)},
	}
	end := time.Date(2025, 6, 4, 17, 0, 0, 0, time.UTC)

	atEnd := RunPass(snap, end)
	assert.Empty(t, atEnd.NewTransactions, "a lesson ending exactly now has not finished")

	justAfter := RunPass(snap, end.Add(time.Microsecond))
	assert.Len(t, justAfter.NewTransactions, 1)
}

func TestRunPassSkipUnpricedThenBillRetroactively(t *testing.T) {
	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	unpriced := pricedStudent()
	unpriced.WeeklySchedule = nil
	unpriced.PricePerHour = 0
	snap := Snapshot{
		Students: []models.Student{unpriced},
		Bookings: []models.Occurrence{oneOffBooking("lesson-1", "2025-06-04", 9, 1)},
	}

	first := RunPass(snap, now)
	assert.Empty(t, first.NewTransactions)
	_, done := first.ProcessedKeys[models.ProcessedKey("lesson-1", "2025-06-04")]
	assert.False(t, done, "skipping for missing pricing must not consume the key")

	// Price configured later: the same lesson bills on the next pass.
	snap.Students[0].PricePerHour = 40
	snap.Transactions = first.Transactions
	snap.ProcessedKeys = first.ProcessedKeys
	second := RunPass(snap, now.Add(time.Hour))
	require.Len(t, second.NewTransactions, 1)
	assert.Equal(t, 40.0, second.NewTransactions[0].Amount)
}

func TestRunPassIgnoresPausedStudents(t *testing.T) {
	paused := pricedStudent()
	paused.Status = models.StudentPaused

	result := RunPass(Snapshot{Students: []models.Student{paused}},
		time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC))
	assert.Empty(t, result.NewTransactions)
}

func TestRunPassBillsEachWeeklyOccurrenceOnce(t *testing.T) {
	student := pricedStudent()

	// Baseline pass on Wednesday morning: every earlier Wednesday in the
	// trailing year bills, but today's 16:00 lesson has not happened yet.
	morning := time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC)
	baseline := RunPass(Snapshot{Students: []models.Student{student}}, morning)
	require.NotEmpty(t, baseline.NewTransactions)
	for _, tx := range baseline.NewTransactions {
		assert.NotEqual(t, "2025-06-04", tx.Date)
	}

	// Thursday: exactly the Wednesday lesson accrues, $60 for the hour.
	snap := Snapshot{
		Students:      []models.Student{student},
		Transactions:  baseline.Transactions,
		ProcessedKeys: baseline.ProcessedKeys,
	}
	thursday := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	result := RunPass(snap, thursday)
	require.Len(t, result.NewTransactions, 1)
	tx := result.NewTransactions[0]
	assert.Equal(t, "2025-06-04", tx.Date)
	assert.Equal(t, 60.0, tx.Amount)
	assert.True(t, tx.DerivedFrom(models.RuleID("student-1", 2, 0)))

	// Same day again: nothing left to bill.
	snap.Transactions = result.Transactions
	snap.ProcessedKeys = result.ProcessedKeys
	again := RunPass(snap, thursday.Add(time.Minute))
	assert.Empty(t, again.NewTransactions)
}

func TestRunPassHonorsSkipExceptions(t *testing.T) {
	student := pricedStudent()
	skip := models.RecurringException{
		ID:               "exception-1",
		RecurrenceRuleID: models.RuleID("student-1", 2, 0),
		Date:             "2025-06-04",
		Type:             models.ExceptionSkip,
	}

	morning := time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC)
	baseline := RunPass(Snapshot{
		Students:   []models.Student{student},
		Exceptions: []models.RecurringException{skip},
	}, morning)

	result := RunPass(Snapshot{
		Students:      []models.Student{student},
		Exceptions:    []models.RecurringException{skip},
		Transactions:  baseline.Transactions,
		ProcessedKeys: baseline.ProcessedKeys,
	}, time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC))

	assert.Empty(t, result.NewTransactions, "a skipped date never bills")
}

func TestRunPassPrependsNewTransactions(t *testing.T) {
	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	student := pricedStudent()
	student.WeeklySchedule = nil
	existing := models.Transaction{ID: "manual-1", Date: "2025-05-01", Amount: 25}

	result := RunPass(Snapshot{
		Students:     []models.Student{student},
		Bookings:     []models.Occurrence{oneOffBooking("lesson-1", "2025-06-04", 9, 1)},
		Transactions: []models.Transaction{existing},
	}, now)

	require.Len(t, result.Transactions, 2)
	assert.True(t, result.Transactions[0].DerivedFrom("lesson-1"))
	assert.Equal(t, "manual-1", result.Transactions[1].ID, "history keeps its order after the new block")
}
