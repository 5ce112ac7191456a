package schedule

import (
	"time"

	"tutorly/models"
)

// exceptionKey indexes exceptions by the single instance they override.
type exceptionKey struct {
	ruleID string
	date   string
}

func indexExceptions(exceptions []models.RecurringException) map[exceptionKey][]models.RecurringException {
	idx := make(map[exceptionKey][]models.RecurringException, len(exceptions))
	for _, ex := range exceptions {
		k := exceptionKey{ruleID: ex.RecurrenceRuleID, date: ex.Date}
		idx[k] = append(idx[k], ex)
	}
	return idx
}

// Materialize expands the weekly patterns of every Active student into
// concrete dated occurrences over the inclusive [windowStart, windowEnd]
// window, applying per-date exceptions. Pure: repeatable, side-effect free,
// safe to call on every read.
func Materialize(students []models.Student, exceptions []models.RecurringException, windowStart, windowEnd time.Time) []models.Occurrence {
	idx := indexExceptions(exceptions)
	var out []models.Occurrence
	for _, s := range students {
		if s.Status != models.StudentActive {
			continue
		}
		out = append(out, materializeStudent(s, idx, windowStart, windowEnd)...)
	}
	return out
}

// MaterializeStudent expands a single student's weekly slots over the
// window. Status is not checked here; callers gate on it.
func MaterializeStudent(student models.Student, exceptions []models.RecurringException, windowStart, windowEnd time.Time) []models.Occurrence {
	return materializeStudent(student, indexExceptions(exceptions), windowStart, windowEnd)
}

func materializeStudent(student models.Student, idx map[exceptionKey][]models.RecurringException, windowStart, windowEnd time.Time) []models.Occurrence {
	if len(student.WeeklySchedule) == 0 {
		return nil
	}

	start := midnight(windowStart)
	end := midnight(windowEnd)

	var out []models.Occurrence
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dow := models.DayOfWeek(d)
		dateStr := d.Format(models.DateLayout)
		for i, slot := range student.WeeklySchedule {
			if slot.Day != dow {
				continue
			}
			ruleID := models.RuleID(student.ID, slot.Day, i)

			startTime := slot.StartTime
			duration := slot.Duration
			skipped := false
			for _, ex := range idx[exceptionKey{ruleID: ruleID, date: dateStr}] {
				switch ex.Type {
				case models.ExceptionSkip:
					skipped = true
				case models.ExceptionTimeChange:
					if ex.NewTime != nil {
						startTime = *ex.NewTime
					}
				case models.ExceptionDurationChange:
					if ex.NewDuration != nil {
						duration = *ex.NewDuration
					}
				}
			}
			if skipped {
				continue
			}

			out = append(out, models.Occurrence{
				ID:               ruleID + "-" + dateStr,
				Provenance:       models.ProvenanceRecurring,
				Title:            student.Name,
				Subtitle:         student.Subject,
				Day:              slot.Day,
				StartTime:        startTime,
				Duration:         duration,
				Color:            studentColor(student),
				Date:             dateStr,
				StudentID:        student.ID,
				RecurrenceRuleID: ruleID,
			})
		}
	}
	return out
}

func studentColor(s models.Student) string {
	if s.Color == "" {
		return "stone"
	}
	return s.Color
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
