package attendance

import "errors"

// Attendance domain errors
var (
	// ErrInvalidArgument is returned for a malformed month, an unparseable record
	// date or a negative deduction rate. It is never coerced into a valid value.
	ErrInvalidArgument = errors.New("invalid argument")
)
