package journey

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sadopc/shiftlog/internal/timefmt"
)

// Input is a record as typed by the user: every field is text, and an empty
// string means "not given". Forms and command flags both fill one in.
type Input struct {
	Date        string // YYYY-MM-DD
	Start       string // HH:MM
	End         string // HH:MM
	Meal        string // minutes
	Rest        string // minutes
	Holiday     bool
	KmStart     string
	KmEnd       string
	ExternalRef string
	Notes       string
}

// DefaultMealMinutes is proposed for new records.
const DefaultMealMinutes = 60

// NewInput returns the blank form for a new record on d.
func NewInput(d Date) Input {
	return Input{Date: d.String(), Meal: strconv.Itoa(DefaultMealMinutes)}
}

// InputOf fills an Input from an existing record so it can be edited.
func InputOf(r ShiftRecord) Input {
	in := Input{
		Date:        r.Date.String(),
		Meal:        strconv.Itoa(r.MealMinutes),
		Holiday:     r.IsHoliday,
		ExternalRef: r.ExternalRef,
		Notes:       r.Notes,
	}
	if r.StartAt != nil {
		in.Start = r.StartAt.Format("15:04")
	}
	if r.EndAt != nil {
		in.End = r.EndAt.Format("15:04")
	}
	if r.RestMinutes != nil {
		in.Rest = strconv.Itoa(*r.RestMinutes)
	}
	if r.KmStart != nil {
		in.KmStart = r.KmStart.String()
	}
	if r.KmEnd != nil {
		in.KmEnd = r.KmEnd.String()
	}
	return in
}

// Record parses in. Start and end are placed on the record's date in loc.
// Parse failures wrap ErrInvalidInput; range checks are left to
// ValidateRecord.
func (in Input) Record(loc *time.Location) (ShiftRecord, error) {
	var r ShiftRecord

	d, err := ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	r.Date = d

	if r.StartAt, err = parseClock(d, in.Start, loc); err != nil {
		return r, err
	}
	if r.EndAt, err = parseClock(d, in.End, loc); err != nil {
		return r, err
	}

	if v := strings.TrimSpace(in.Meal); v != "" {
		if r.MealMinutes, err = strconv.Atoi(v); err != nil {
			return r, fmt.Errorf("%w: meal minutes %q", ErrInvalidInput, in.Meal)
		}
	}
	if v := strings.TrimSpace(in.Rest); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return r, fmt.Errorf("%w: rest minutes %q", ErrInvalidInput, in.Rest)
		}
		r.RestMinutes = &n
	}

	if r.KmStart, err = parseKm(in.KmStart); err != nil {
		return r, err
	}
	if r.KmEnd, err = parseKm(in.KmEnd); err != nil {
		return r, err
	}

	r.IsHoliday = in.Holiday
	r.ExternalRef = strings.TrimSpace(in.ExternalRef)
	r.Notes = strings.TrimSpace(in.Notes)
	return r, nil
}

func parseClock(d Date, v string, loc *time.Location) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	m, err := timefmt.ParseTimeOfDay(v)
	if err != nil {
		return nil, fmt.Errorf("%w: time %q: %v", ErrInvalidInput, v, err)
	}
	t := d.At(m, loc)
	return &t, nil
}

// parseKm accepts a decimal comma as well as a point.
func parseKm(v string) (*decimal.Decimal, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("%w: odometer %q", ErrInvalidInput, v)
	}
	return &d, nil
}
