package schedule

import "tutorly/models"

// DetectConflicts checks every candidate weekly slot against every existing
// occurrence. An occurrence is skipped when it belongs to excludeStudentID
// and is itself recurring-derived: a student's own pattern never conflicts
// with edits to that same pattern, while their one-off lessons still do.
// Conflicts come back in scan order and are not deduplicated.
func DetectConflicts(candidates []models.WeeklyScheduleSlot, occurrences []models.Occurrence, excludeStudentID string) []models.Conflict {
	var conflicts []models.Conflict
	for _, slot := range candidates {
		for _, occ := range occurrences {
			if excludeStudentID != "" && occ.StudentID == excludeStudentID && occ.IsRecurring() {
				continue
			}
			if occ.Day != slot.Day {
				continue
			}
			if !models.IntervalsOverlap(slot.StartTime, slot.Duration, occ.StartTime, occ.Duration) {
				continue
			}
			conflicts = append(conflicts, models.Conflict{
				Day:      slot.Day,
				Time:     slot.StartTime,
				Duration: slot.Duration,
				ConflictingItem: models.ConflictingItem{
					Title:     occ.Title,
					Subtitle:  occ.Subtitle,
					StudentID: occ.StudentID,
				},
			})
		}
	}
	return conflicts
}
