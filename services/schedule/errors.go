package schedule

import "errors"

var (
	// ErrCannotDeleteRecurring rejects deletion of a recurring-derived
	// occurrence; the owning student's pattern must be edited instead.
	ErrCannotDeleteRecurring = errors.New("cannot delete a recurring lesson instance; edit the student's weekly schedule")

	ErrBookingNotFound   = errors.New("booking not found")
	ErrExceptionNotFound = errors.New("exception not found")
)
