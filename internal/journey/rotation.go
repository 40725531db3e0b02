package journey

import (
	"fmt"
	"strconv"
	"strings"
)

// ShiftStatus classifies a day under the rotation.
type ShiftStatus int

const (
	StatusUndetermined ShiftStatus = iota
	StatusWork
	StatusOff
)

var statusNames = map[ShiftStatus]string{
	StatusUndetermined: "undetermined",
	StatusWork:         "work",
	StatusOff:          "off",
}

func (s ShiftStatus) String() string { return statusNames[s] }

// Rotation is a repeating block of work days followed by off days.
type Rotation struct {
	WorkDays int `validate:"min=1"`
	OffDays  int `validate:"min=1"`
}

// ParseRotation parses patterns like "6x2".
func ParseRotation(pattern string) (Rotation, error) {
	w, o, ok := strings.Cut(strings.TrimSpace(pattern), "x")
	if !ok {
		return Rotation{}, fmt.Errorf("%w: rotation %q: expected <work>x<off>", ErrInvalidConfiguration, pattern)
	}
	work, err := strconv.Atoi(w)
	if err != nil || work <= 0 {
		return Rotation{}, fmt.Errorf("%w: rotation %q: work days must be a positive integer", ErrInvalidConfiguration, pattern)
	}
	off, err := strconv.Atoi(o)
	if err != nil || off <= 0 {
		return Rotation{}, fmt.Errorf("%w: rotation %q: off days must be a positive integer", ErrInvalidConfiguration, pattern)
	}
	return Rotation{WorkDays: work, OffDays: off}, nil
}

func (r Rotation) String() string {
	if r.IsZero() {
		return ""
	}
	return fmt.Sprintf("%dx%d", r.WorkDays, r.OffDays)
}

func (r Rotation) IsZero() bool { return r.WorkDays+r.OffDays <= 0 }

// StatusOn reports whether d is a work or off day when anchor is day 0 of
// the cycle. Days before the anchor, a nil anchor or an unset rotation are
// undetermined.
func (r Rotation) StatusOn(d Date, anchor *Date) ShiftStatus {
	if anchor == nil || r.IsZero() || d.Before(*anchor) {
		return StatusUndetermined
	}
	pos := d.DaysSince(*anchor) % (r.WorkDays + r.OffDays)
	if pos < r.WorkDays {
		return StatusWork
	}
	return StatusOff
}

// ShiftStatusOf parses pattern and resolves the status of d. A malformed
// pattern fails with ErrInvalidConfiguration.
func ShiftStatusOf(d Date, pattern string, anchor *Date) (ShiftStatus, error) {
	if anchor == nil || d.Before(*anchor) {
		return StatusUndetermined, nil
	}
	r, err := ParseRotation(pattern)
	if err != nil {
		return StatusUndetermined, err
	}
	return r.StatusOn(d, anchor), nil
}
