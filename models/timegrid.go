package models

import "time"

// DateLayout is the calendar-date format used everywhere lessons are dated.
const DateLayout = "2006-01-02"

// DayOfWeek converts a time to the Monday-first convention used by weekly
// slots (Monday = 0 .. Sunday = 6). Go's Weekday has Sunday = 0.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// HoursToDuration converts decimal hours to a time.Duration.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// IntervalsOverlap reports whether two half-open intervals
// [aStart, aStart+aDur) and [bStart, bStart+bDur) intersect. Half-open, so
// back-to-back lessons never conflict.
func IntervalsOverlap(aStart, aDur, bStart, bDur float64) bool {
	aEnd := aStart + aDur
	bEnd := bStart + bDur
	return !(aEnd <= bStart || aStart >= bEnd)
}

// Instant resolves a dated lesson time to an absolute instant: midnight of
// the date plus the decimal-hour offset. Going through a Duration rather
// than setting clock fields keeps offsets past 24:00 rolling over to the
// next day. ok is false when the date does not parse; such occurrences are
// treated as never completing.
func Instant(date string, hours float64, loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(HoursToDuration(hours)), true
}

// EndInstant is the moment the occurrence finishes. Both the Upcoming/Past
// classification and accrual eligibility go through this one helper so the
// two tests can never disagree.
func (o Occurrence) EndInstant(loc *time.Location) (time.Time, bool) {
	return Instant(o.Date, o.StartTime+o.Duration, loc)
}

// StartInstant is the moment the occurrence begins.
func (o Occurrence) StartInstant(loc *time.Location) (time.Time, bool) {
	return Instant(o.Date, o.StartTime, loc)
}

// IsPast reports whether the occurrence has completely finished before now
// (strict: a lesson ending exactly at now is still upcoming).
func (o Occurrence) IsPast(now time.Time) bool {
	end, ok := o.EndInstant(now.Location())
	if !ok {
		return false
	}
	return end.Before(now)
}
