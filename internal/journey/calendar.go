package journey

import "time"

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date   Date
	Status ShiftStatus
	Logged bool
}

// CalendarMonth lays out a calendar month as weeks starting on
// p.WeekStart. Cells outside the month are nil.
func CalendarMonth(year int, month time.Month, p Policy, records []ShiftRecord) [][]*CalendarDay {
	logged := make(map[Date]bool, len(records))
	for _, r := range records {
		logged[r.Date] = true
	}

	first := Date{Year: year, Month: month, Day: 1}
	lead := (int(first.Weekday()) - int(p.WeekStart) + 7) % 7

	var weeks [][]*CalendarDay
	week := make([]*CalendarDay, lead, 7)
	for day := 1; day <= DaysIn(year, month); day++ {
		d := Date{Year: year, Month: month, Day: day}
		week = append(week, &CalendarDay{
			Date:   d,
			Status: p.Rotation.StatusOn(d, p.RotationAnchor),
			Logged: logged[d],
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]*CalendarDay, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, nil)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
