package schedule

import (
	"testing"
	"time"

	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func wednesdayStudent() models.Student {
	return models.Student{
		ID:      "student-1",
		Name:    "John Smith",
		Subject: "Mathematics",
		Status:  models.StudentActive,
		Color:   "amber",
		WeeklySchedule: []models.WeeklyScheduleSlot{
			{Day: 2, StartTime: 16, Duration: 1},
		},
	}
}

func TestMaterializeEmitsEveryMatchingDate(t *testing.T) {
	// 2025-06-02 is a Monday; the window holds exactly two Wednesdays.
	occs := Materialize([]models.Student{wednesdayStudent()}, nil,
		date(2025, 6, 2), date(2025, 6, 15))

	require.Len(t, occs, 2)
	assert.Equal(t, "2025-06-04", occs[0].Date)
	assert.Equal(t, "2025-06-11", occs[1].Date)
	for _, occ := range occs {
		assert.Equal(t, models.ProvenanceRecurring, occ.Provenance)
		assert.Equal(t, "recurring-student-1-2-0", occ.RecurrenceRuleID)
		assert.Equal(t, occ.RecurrenceRuleID+"-"+occ.Date, occ.ID)
		assert.Equal(t, 16.0, occ.StartTime)
		assert.Equal(t, 1.0, occ.Duration)
		assert.Equal(t, "John Smith", occ.Title)
	}
}

func TestMaterializeSkipException(t *testing.T) {
	exceptions := []models.RecurringException{{
		ID:               "exception-1",
		RecurrenceRuleID: "recurring-student-1-2-0",
		Date:             "2025-06-04",
		Type:             models.ExceptionSkip,
	}}

	occs := Materialize([]models.Student{wednesdayStudent()}, exceptions,
		date(2025, 6, 2), date(2025, 6, 15))

	require.Len(t, occs, 1, "the skipped date is omitted entirely")
	assert.Equal(t, "2025-06-11", occs[0].Date)
}

func TestMaterializeTimeAndDurationChange(t *testing.T) {
	newTime := 18.5
	newDuration := 2.0
	exceptions := []models.RecurringException{
		{
			ID:               "exception-1",
			RecurrenceRuleID: "recurring-student-1-2-0",
			Date:             "2025-06-04",
			Type:             models.ExceptionTimeChange,
			NewTime:          &newTime,
		},
		{
			ID:               "exception-2",
			RecurrenceRuleID: "recurring-student-1-2-0",
			Date:             "2025-06-04",
			Type:             models.ExceptionDurationChange,
			NewDuration:      &newDuration,
		},
	}

	occs := Materialize([]models.Student{wednesdayStudent()}, exceptions,
		date(2025, 6, 2), date(2025, 6, 8))

	require.Len(t, occs, 1)
	assert.Equal(t, 18.5, occs[0].StartTime)
	assert.Equal(t, 2.0, occs[0].Duration)
}

func TestMaterializeExceptionOnlyHitsItsDate(t *testing.T) {
	newTime := 9.0
	exceptions := []models.RecurringException{{
		ID:               "exception-1",
		RecurrenceRuleID: "recurring-student-1-2-0",
		Date:             "2025-06-04",
		Type:             models.ExceptionTimeChange,
		NewTime:          &newTime,
	}}

	occs := Materialize([]models.Student{wednesdayStudent()}, exceptions,
		date(2025, 6, 2), date(2025, 6, 15))

	require.Len(t, occs, 2)
	assert.Equal(t, 9.0, occs[0].StartTime)
	assert.Equal(t, 16.0, occs[1].StartTime, "the other instance keeps the slot time")
}

func TestMaterializeInactiveStudentsExcluded(t *testing.T) {
	paused := wednesdayStudent()
	paused.ID = "student-2"
	paused.Status = models.StudentPaused

	atRisk := wednesdayStudent()
	atRisk.ID = "student-3"
	atRisk.Status = models.StudentAtRisk

	occs := Materialize([]models.Student{paused, atRisk},
		nil, date(2025, 6, 2), date(2025, 6, 15))
	assert.Empty(t, occs)
}

func TestMaterializeOrphanedExceptionIsNoOp(t *testing.T) {
	exceptions := []models.RecurringException{{
		ID:               "exception-1",
		RecurrenceRuleID: "recurring-gone-0-0",
		Date:             "2025-06-04",
		Type:             models.ExceptionSkip,
	}}

	occs := Materialize([]models.Student{wednesdayStudent()}, exceptions,
		date(2025, 6, 2), date(2025, 6, 8))
	require.Len(t, occs, 1, "an exception for a vanished rule changes nothing")
}

func TestRuleIDStableAcrossRecomputation(t *testing.T) {
	s := wednesdayStudent()
	first := MaterializeStudent(s, nil, date(2025, 6, 2), date(2025, 6, 8))
	second := MaterializeStudent(s, nil, date(2025, 6, 2), date(2025, 6, 8))
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].RecurrenceRuleID, second[0].RecurrenceRuleID)
}
