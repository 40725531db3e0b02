// Package journey holds the shift model and the pure rules derived from it:
// worked time and overtime per shift, accounting months, rotation status,
// aggregation and the one-shift-per-day rule.
package journey

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftRecord is one logged workday.
type ShiftRecord struct {
	ID          string
	Date        Date
	StartAt     *time.Time
	EndAt       *time.Time
	MealMinutes int  `validate:"gte=0"`
	RestMinutes *int `validate:"omitempty,gte=0"`
	IsHoliday   bool
	KmStart     *decimal.Decimal
	KmEnd       *decimal.Decimal
	ExternalRef string `validate:"max=64"`
	Notes       string `validate:"max=2000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasDistance reports whether both odometer readings are present.
func (r ShiftRecord) HasDistance() bool {
	return r.KmStart != nil && r.KmEnd != nil
}

// Policy is the user's calculation settings. One per account.
type Policy struct {
	BaseShiftMinutes int `validate:"min=1,max=1440"`
	DistanceTracking bool
	CycleStartDay    int      `validate:"min=1,max=31"`
	Rotation         Rotation `validate:"-"`
	RotationAnchor   *Date
	WeekStart        time.Weekday `validate:"min=0,max=6"`
	UpdatedAt        time.Time
}

// DefaultPolicy mirrors what onboarding proposes.
func DefaultPolicy() Policy {
	return Policy{
		BaseShiftMinutes: 440,
		CycleStartDay:    1,
		Rotation:         Rotation{WorkDays: 6, OffDays: 2},
		WeekStart:        time.Sunday,
	}
}

// Calculation is derived from one record and never stored.
type Calculation struct {
	WorkedMinutes      int
	Overtime50Minutes  int
	Overtime100Minutes int
	Distance           *decimal.Decimal // nil when not tracked
}

// Summary is the sum of calculations over a set of records.
type Summary struct {
	WorkedMinutes      int
	Overtime50Minutes  int
	Overtime100Minutes int
	Distance           decimal.Decimal
	Count              int
}

// Add returns the field-wise sum of s and o.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		WorkedMinutes:      s.WorkedMinutes + o.WorkedMinutes,
		Overtime50Minutes:  s.Overtime50Minutes + o.Overtime50Minutes,
		Overtime100Minutes: s.Overtime100Minutes + o.Overtime100Minutes,
		Distance:           s.Distance.Add(o.Distance),
		Count:              s.Count + o.Count,
	}
}

// Equal compares summaries; decimals are compared by value.
func (s Summary) Equal(o Summary) bool {
	return s.WorkedMinutes == o.WorkedMinutes &&
		s.Overtime50Minutes == o.Overtime50Minutes &&
		s.Overtime100Minutes == o.Overtime100Minutes &&
		s.Distance.Equal(o.Distance) &&
		s.Count == o.Count
}
