package schedule

import (
	"sort"

	"tutorly/models"
)

const (
	// Leading boundary for gap scanning, in decimal hours.
	dayStartHour = 8.0

	maxSuggestions = 5

	// DefaultPreferredDuration is assumed when the caller passes no
	// duration, in hours.
	DefaultPreferredDuration = 1.0
)

// SuggestAvailableSlots offers free gaps on the given day of week that fit
// preferredDuration. With nothing scheduled it returns a fixed default set.
// Otherwise it scans the gaps between consecutive occurrences and then the
// gap from the 08:00 day start to the first occurrence, returning at most
// five in scan order. The gap between the last occurrence and the 20:00 day
// end is not offered.
func SuggestAvailableSlots(day int, occurrences []models.Occurrence, preferredDuration float64) []models.SlotSuggestion {
	if preferredDuration <= 0 {
		preferredDuration = DefaultPreferredDuration
	}

	var dayItems []models.Occurrence
	for _, occ := range occurrences {
		if occ.Day == day {
			dayItems = append(dayItems, occ)
		}
	}
	sort.SliceStable(dayItems, func(i, j int) bool {
		return dayItems[i].StartTime < dayItems[j].StartTime
	})

	if len(dayItems) == 0 {
		return []models.SlotSuggestion{
			{StartTime: 9, EndTime: 10},
			{StartTime: 14, EndTime: 15},
			{StartTime: 16, EndTime: 17},
		}
	}

	var suggestions []models.SlotSuggestion
	for i := 0; i+1 < len(dayItems); i++ {
		gapStart := dayItems[i].StartTime + dayItems[i].Duration
		gapEnd := dayItems[i+1].StartTime
		if gapEnd-gapStart >= preferredDuration {
			suggestions = append(suggestions, models.SlotSuggestion{StartTime: gapStart, EndTime: gapEnd})
		}
	}

	if dayItems[0].StartTime-dayStartHour >= preferredDuration {
		suggestions = append(suggestions, models.SlotSuggestion{StartTime: dayStartHour, EndTime: dayItems[0].StartTime})
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
