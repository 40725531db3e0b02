package journey

import (
	"strings"
	"time"
)

// Filter selects records.
type Filter func(ShiftRecord) bool

func All() Filter {
	return func(ShiftRecord) bool { return true }
}

func OnDate(d Date) Filter {
	return func(r ShiftRecord) bool { return r.Date == d }
}

// InWeek keeps records in the week containing d.
func InWeek(d Date, weekStart time.Weekday) Filter {
	first, last := WeekOf(d, weekStart)
	return Between(first, last)
}

// Between keeps records dated from..to inclusive.
func Between(from, to Date) Filter {
	return func(r ShiftRecord) bool {
		return !r.Date.Before(from) && !r.Date.After(to)
	}
}

func InAccountingMonth(m AccountingMonth, cycleStartDay int) Filter {
	return func(r ShiftRecord) bool {
		return AccountingMonthOf(r.Date, cycleStartDay) == m
	}
}

// Holidays keeps holiday records when want is true, regular ones otherwise.
func Holidays(want bool) Filter {
	return func(r ShiftRecord) bool { return r.IsHoliday == want }
}

// WithDistance keeps records that do (or do not) carry both odometer
// readings.
func WithDistance(want bool) Filter {
	return func(r ShiftRecord) bool { return r.HasDistance() == want }
}

// Matching does a case-insensitive search over reference and notes. An
// empty term matches everything.
func Matching(term string) Filter {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(r ShiftRecord) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(r.ExternalRef), term) ||
			strings.Contains(strings.ToLower(r.Notes), term)
	}
}

// And keeps records accepted by every non-nil filter.
func And(filters ...Filter) Filter {
	return func(r ShiftRecord) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

// Apply returns the records accepted by f, preserving order.
func Apply(records []ShiftRecord, f Filter) []ShiftRecord {
	if f == nil {
		f = All()
	}
	var out []ShiftRecord
	for _, r := range records {
		if f(r) {
			out = append(out, r)
		}
	}
	return out
}
