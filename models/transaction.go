package models

import (
	"fmt"
	"strings"
	"time"
)

// TransactionStatus is the payment state shown on the earnings screen.
// Accrued transactions are emitted Paid; manual entries may be Pending.
type TransactionStatus string

const (
	TransactionPaid    TransactionStatus = "Paid"
	TransactionPending TransactionStatus = "Pending"
)

// Transaction is one billed lesson (or a manually recorded payment). The
// engine treats the collection as append-only; corrections happen through
// cascade retraction, never edits.
type Transaction struct {
	ID       string            `json:"id" bson:"id"`
	Date     string            `json:"date" bson:"date"`
	Student  string            `json:"student" bson:"student"`
	Initials string            `json:"initials,omitempty" bson:"initials,omitempty"`
	Subject  string            `json:"subject,omitempty" bson:"subject,omitempty"`
	Status   TransactionStatus `json:"status" bson:"status"`
	Amount   float64           `json:"amount" bson:"amount"`
	Duration float64           `json:"duration,omitempty" bson:"duration,omitempty"`
	Color    string            `json:"color,omitempty" bson:"color,omitempty"`
}

// TransactionID builds the id of a transaction accrued from a one-off
// booking. The sourceID prefix is load-bearing: cascade retraction matches
// on "transaction-{sourceID}-", while the generation timestamp keeps ids
// unique across passes. The timestamp makes the id unusable for dedup; the
// processed-key set is the sole dedup authority.
func TransactionID(sourceID string, generatedAt time.Time) string {
	return fmt.Sprintf("transaction-%s-%d", sourceID, generatedAt.UnixNano())
}

// RecurringTransactionID is the id of a transaction accrued from one dated
// instance of a recurring rule. A rule can bill several dates in a single
// pass, so the occurrence date goes into the id as well.
func RecurringTransactionID(ruleID, date string, generatedAt time.Time) string {
	return fmt.Sprintf("transaction-%s-%s-%d", ruleID, date, generatedAt.UnixNano())
}

// DerivedFrom reports whether the transaction was accrued from the given
// source (booking or recurrence rule). Manual transactions live in a
// different id namespace and never match.
func (t Transaction) DerivedFrom(sourceID string) bool {
	return strings.HasPrefix(t.ID, "transaction-"+sourceID+"-")
}

// ProcessedKey is the dedup marker written the instant a transaction is
// emitted for an occurrence: "{sourceId}-{ISODate}".
func ProcessedKey(sourceID, date string) string {
	return sourceID + "-" + date
}
