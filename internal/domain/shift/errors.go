package shift

import "errors"

var (
	ErrShiftEntryNotFound   = errors.New("no daily log found for this employee and date")
	ErrInvalidShiftDuration = errors.New("shift duration must be between 1 and 24 hours")
	ErrForbidden            = errors.New("only a manager or the employee may change this shift")
)
