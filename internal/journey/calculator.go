package journey

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calculate derives worked time, overtime and distance for one record.
//
// It never fails. A record without both timestamps counts zero minutes but
// still reports distance. When EndAt precedes StartAt the raw duration is
// negative and worked time clamps to zero; ValidateRecord keeps such
// records out of the store.
func Calculate(r ShiftRecord, p Policy) Calculation {
	c := Calculation{Distance: distance(r)}
	if r.StartAt == nil || r.EndAt == nil {
		return c
	}

	raw := floorMinutes(r.EndAt.Sub(*r.StartAt))
	deductions := r.MealMinutes
	if r.RestMinutes != nil {
		deductions += *r.RestMinutes
	}
	c.WorkedMinutes = max(0, raw-deductions)

	if r.IsHoliday {
		c.Overtime100Minutes = c.WorkedMinutes
		return c
	}
	c.Overtime50Minutes = max(0, c.WorkedMinutes-p.BaseShiftMinutes)
	return c
}

func distance(r ShiftRecord) *decimal.Decimal {
	if !r.HasDistance() {
		return nil
	}
	d := r.KmEnd.Sub(*r.KmStart)
	return &d
}

// floorMinutes truncates toward negative infinity so that -30s is -1 minute.
func floorMinutes(d time.Duration) int {
	m := d / time.Minute
	if d%time.Minute < 0 {
		m--
	}
	return int(m)
}
