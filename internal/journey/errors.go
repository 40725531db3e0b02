package journey

import "errors"

var (
	// ErrInvalidConfiguration marks settings that cannot be interpreted,
	// such as a rotation pattern that is not "<work>x<off>".
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDuplicateDate is returned when a shift already exists on the date.
	ErrDuplicateDate = errors.New("a shift is already registered on this date")

	// ErrInvalidInput marks a record rejected at the mutation boundary.
	ErrInvalidInput = errors.New("invalid input")
)
