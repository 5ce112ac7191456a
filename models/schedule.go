package models

// Provenance distinguishes how an occurrence came to exist. One-off
// occurrences are stored directly; recurring-derived ones are materialized
// from a student's weekly pattern and never persisted.
type Provenance string

const (
	ProvenanceOneOff    Provenance = "oneOff"
	ProvenanceRecurring Provenance = "recurring"
)

// Occurrence is one concrete, dated lesson instance. For a one-off booking
// Date is the booked calendar date and RecurrenceRuleID is empty. For a
// recurring-derived occurrence both Date and RecurrenceRuleID are set and
// its identity within a window is (RecurrenceRuleID, Date).
type Occurrence struct {
	ID               string     `json:"id" bson:"id"`
	Provenance       Provenance `json:"provenance" bson:"provenance"`
	Title            string     `json:"title" bson:"title"`
	Subtitle         string     `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Day              int        `json:"day" bson:"day"`
	StartTime        float64    `json:"startTime" bson:"startTime"`
	Duration         float64    `json:"duration" bson:"duration"`
	Color            string     `json:"color,omitempty" bson:"color,omitempty"`
	Date             string     `json:"date,omitempty" bson:"date,omitempty"`
	StudentID        string     `json:"studentId,omitempty" bson:"studentId,omitempty"`
	RecurrenceRuleID string     `json:"recurrenceRuleId,omitempty" bson:"recurrenceRuleId,omitempty"`
}

// IsRecurring reports whether the occurrence was materialized from a weekly
// pattern rather than booked directly.
func (o Occurrence) IsRecurring() bool {
	return o.Provenance == ProvenanceRecurring
}

// SourceID is the identity accrual keys on: the rule id for
// recurring-derived occurrences, the booking id for one-off ones.
func (o Occurrence) SourceID() string {
	if o.IsRecurring() {
		return o.RecurrenceRuleID
	}
	return o.ID
}

// ExceptionType classifies a per-date override of one recurring instance.
type ExceptionType string

const (
	ExceptionSkip           ExceptionType = "skip"
	ExceptionTimeChange     ExceptionType = "timeChange"
	ExceptionDurationChange ExceptionType = "durationChange"
)

// RecurringException overrides the single instance of a recurring rule that
// falls on Date. Exceptions outlive pattern edits; one whose rule no longer
// exists is a harmless no-op and is never purged by the engine.
type RecurringException struct {
	ID               string        `json:"id" bson:"id"`
	RecurrenceRuleID string        `json:"recurrenceRuleId" bson:"recurrenceRuleId"`
	Date             string        `json:"date" bson:"date"`
	Type             ExceptionType `json:"type" bson:"type"`
	NewTime          *float64      `json:"newTime,omitempty" bson:"newTime,omitempty"`
	NewDuration      *float64      `json:"newDuration,omitempty" bson:"newDuration,omitempty"`
}

// ConflictingItem identifies the existing occurrence a candidate slot
// collides with.
type ConflictingItem struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	StudentID string `json:"studentId,omitempty"`
}

// Conflict is a detected collision between a candidate weekly slot and an
// existing occurrence. It is a result, not an error; the caller decides
// whether to override.
type Conflict struct {
	Day             int             `json:"day"`
	Time            float64         `json:"time"`
	Duration        float64         `json:"duration"`
	ConflictingItem ConflictingItem `json:"conflictingItem"`
}

// SlotSuggestion is a free gap offered when picking a time for a new slot.
type SlotSuggestion struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}
