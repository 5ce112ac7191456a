package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
	}{
		{name: "monday", date: "2025-06-02", want: 0},
		{name: "wednesday", date: "2025-06-04", want: 2},
		{name: "saturday", date: "2025-06-07", want: 5},
		{name: "sunday", date: "2025-06-08", want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := time.Parse(DateLayout, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, DayOfWeek(d))
		})
	}
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aDur float64
		bStart, bDur float64
		want         bool
	}{
		{name: "half overlap", aStart: 14, aDur: 1, bStart: 14.5, bDur: 1, want: true},
		{name: "back to back", aStart: 14, aDur: 1, bStart: 15, bDur: 1, want: false},
		{name: "contained", aStart: 9, aDur: 3, bStart: 10, bDur: 1, want: true},
		{name: "identical", aStart: 10, aDur: 1, bStart: 10, bDur: 1, want: true},
		{name: "disjoint", aStart: 9, aDur: 1, bStart: 16, bDur: 1, want: false},
		{name: "abutting before", aStart: 15, aDur: 1, bStart: 14, bDur: 1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aDur, tt.bStart, tt.bDur))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, IntervalsOverlap(tt.bStart, tt.bDur, tt.aStart, tt.aDur))
		})
	}
}

func TestEndInstantRollsOverMidnight(t *testing.T) {
	occ := Occurrence{Date: "2025-06-02", StartTime: 23, Duration: 2}
	end, ok := occ.EndInstant(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 3, 1, 0, 0, 0, time.UTC), end)
}

func TestIsPastStrictBoundary(t *testing.T) {
	// Lesson 16:00-17:00 UTC on 2025-06-04.
	occ := Occurrence{Date: "2025-06-04", StartTime: 16, Duration: 1}
	end := time.Date(2025, 6, 4, 17, 0, 0, 0, time.UTC)

	assert.False(t, occ.IsPast(end), "a lesson ending exactly at now is still upcoming")
	assert.True(t, occ.IsPast(end.Add(time.Microsecond)))
	assert.False(t, occ.IsPast(end.Add(-time.Minute)))
}

func TestIsPastUnparsableDate(t *testing.T) {
	occ := Occurrence{Date: "not-a-date", StartTime: 10, Duration: 1}
	assert.False(t, occ.IsPast(time.Now()), "an undatable occurrence never completes")
}

func TestFractionalHours(t *testing.T) {
	start, ok := Instant("2025-06-02", 14.5, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC), start)
}
