package journey

import (
	"fmt"
	"time"
)

// AccountingMonth is a pay period that starts on the policy's cycle day
// rather than on the 1st.
type AccountingMonth struct {
	Year  int
	Month time.Month
}

// AccountingMonthOf resolves the accounting month a day belongs to. Days
// before cycleStartDay belong to the previous month.
func AccountingMonthOf(d Date, cycleStartDay int) AccountingMonth {
	if d.Day >= cycleStartDay {
		return AccountingMonth{Year: d.Year, Month: d.Month}
	}
	return AccountingMonth{Year: d.Year, Month: d.Month}.Prev()
}

func (m AccountingMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// ParseAccountingMonth parses "YYYY-MM".
func ParseAccountingMonth(s string) (AccountingMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return AccountingMonth{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return AccountingMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (m AccountingMonth) Prev() AccountingMonth {
	if m.Month == time.January {
		return AccountingMonth{Year: m.Year - 1, Month: time.December}
	}
	return AccountingMonth{Year: m.Year, Month: m.Month - 1}
}

func (m AccountingMonth) Next() AccountingMonth {
	if m.Month == time.December {
		return AccountingMonth{Year: m.Year + 1, Month: time.January}
	}
	return AccountingMonth{Year: m.Year, Month: m.Month + 1}
}

// Start is the first calendar day of the period. When the cycle day does
// not exist in the month (31 in April), the period opens on the 1st of the
// following month.
func (m AccountingMonth) Start(cycleStartDay int) Date {
	if cycleStartDay <= DaysIn(m.Year, m.Month) {
		return Date{Year: m.Year, Month: m.Month, Day: cycleStartDay}
	}
	n := m.Next()
	return Date{Year: n.Year, Month: n.Month, Day: 1}
}

// End is the last calendar day of the period, inclusive.
func (m AccountingMonth) End(cycleStartDay int) Date {
	return m.Next().Start(cycleStartDay).AddDays(-1)
}

func (m AccountingMonth) Contains(d Date, cycleStartDay int) bool {
	return AccountingMonthOf(d, cycleStartDay) == m
}

// WeekOf returns the first and last day of the week containing d.
func WeekOf(d Date, weekStart time.Weekday) (Date, Date) {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	first := d.AddDays(-offset)
	return first, first.AddDays(6)
}
