package earnings

import (
	"time"

	"tutorly/models"
	"tutorly/services/schedule"
)

// AccrualWindowDays is how far back the pass looks for completed recurring
// occurrences: the trailing year. Future occurrences cannot be completed,
// so the window ends at now.
const AccrualWindowDays = 365

// Snapshot is the immutable state an accrual pass evaluates. Passes never
// mutate it; they return a replacement value.
type Snapshot struct {
	Students      []models.Student
	Bookings      []models.Occurrence
	Exceptions    []models.RecurringException
	Transactions  []models.Transaction
	ProcessedKeys map[string]struct{}
}

// PassResult is the outcome of one accrual pass: the freshly emitted
// transactions plus the full replacement (transactions, processedKeys) pair,
// to be swapped in atomically.
type PassResult struct {
	NewTransactions []models.Transaction
	Transactions    []models.Transaction
	ProcessedKeys   map[string]struct{}
}

// RunPass scans the snapshot for lessons that have completely finished
// before now and have not yet produced a transaction, and bills each exactly
// once. Pure: rerunning with the same snapshot and now emits nothing new,
// because the processed-key set is the sole record of what has been
// accrued.
func RunPass(snap Snapshot, now time.Time) PassResult {
	students := make(map[string]models.Student, len(snap.Students))
	for _, s := range snap.Students {
		students[s.ID] = s
	}

	keys := make(map[string]struct{}, len(snap.ProcessedKeys))
	for k := range snap.ProcessedKeys {
		keys[k] = struct{}{}
	}

	var emitted []models.Transaction

	// One-off bookings.
	for _, b := range snap.Bookings {
		if b.Date == "" || b.StudentID == "" {
			continue
		}
		key := models.ProcessedKey(b.ID, b.Date)
		if _, done := keys[key]; done {
			continue
		}
		if !b.IsPast(now) {
			continue
		}
		student, ok := students[b.StudentID]
		if !ok || !student.HasPricing() {
			// No pricing: skip silently and leave the key unset, so the
			// lesson bills retroactively once a price is configured.
			continue
		}
		emitted = append(emitted, models.Transaction{
			ID:       models.TransactionID(b.ID, now),
			Date:     b.Date,
			Student:  student.Name,
			Initials: student.Initials,
			Subject:  student.Subject,
			Status:   models.TransactionPaid,
			Amount:   student.PricePerHour * b.Duration,
			Duration: b.Duration,
			Color:    student.Color,
		})
		keys[key] = struct{}{}
	}

	// Recurring patterns: materialize the trailing year per active priced
	// student and bill each completed, unprocessed instance.
	windowStart := now.AddDate(0, 0, -AccrualWindowDays)
	for _, s := range snap.Students {
		if s.Status != models.StudentActive || !s.HasPricing() {
			continue
		}
		for _, occ := range schedule.MaterializeStudent(s, snap.Exceptions, windowStart, now) {
			key := models.ProcessedKey(occ.RecurrenceRuleID, occ.Date)
			if _, done := keys[key]; done {
				continue
			}
			if !occ.IsPast(now) {
				continue
			}
			emitted = append(emitted, models.Transaction{
				ID:       models.RecurringTransactionID(occ.RecurrenceRuleID, occ.Date, now),
				Date:     occ.Date,
				Student:  s.Name,
				Initials: s.Initials,
				Subject:  s.Subject,
				Status:   models.TransactionPaid,
				Amount:   s.PricePerHour * occ.Duration,
				Duration: occ.Duration,
				Color:    s.Color,
			})
			keys[key] = struct{}{}
		}
	}

	// Newest first: new transactions are prepended as a block.
	updated := make([]models.Transaction, 0, len(emitted)+len(snap.Transactions))
	updated = append(updated, emitted...)
	updated = append(updated, snap.Transactions...)

	return PassResult{
		NewTransactions: emitted,
		Transactions:    updated,
		ProcessedKeys:   keys,
	}
}
