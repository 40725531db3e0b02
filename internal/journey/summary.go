package journey

import "sort"

// Summarize sums the calculations of every record f accepts. Untracked
// distances add nothing but the record is still counted.
func Summarize(records []ShiftRecord, p Policy, f Filter) Summary {
	if f == nil {
		f = All()
	}
	var s Summary
	for _, r := range records {
		if !f(r) {
			continue
		}
		c := Calculate(r, p)
		s.WorkedMinutes += c.WorkedMinutes
		s.Overtime50Minutes += c.Overtime50Minutes
		s.Overtime100Minutes += c.Overtime100Minutes
		if c.Distance != nil {
			s.Distance = s.Distance.Add(*c.Distance)
		}
		s.Count++
	}
	return s
}

// DailyTotal is one day's calculation, used for charts.
type DailyTotal struct {
	Date Date
	Calculation
}

// Daily returns one entry per day from..to inclusive, with zero values for
// days without a record.
func Daily(records []ShiftRecord, p Policy, from, to Date) []DailyTotal {
	byDate := make(map[Date]Calculation, len(records))
	for _, r := range records {
		byDate[r.Date] = Calculate(r, p)
	}
	var out []DailyTotal
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, DailyTotal{Date: d, Calculation: byDate[d]})
	}
	return out
}

// SortKey selects the ordering used by Sort.
type SortKey int

const (
	SortByDate SortKey = iota
	SortByWorked
	SortByOvertime
)

// ParseSortKey accepts "date", "hours" and "extra" (and their long forms).
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "", "date":
		return SortByDate, true
	case "hours", "worked":
		return SortByWorked, true
	case "extra", "overtime":
		return SortByOvertime, true
	}
	return SortByDate, false
}

// Sort orders records in place. Overtime compares the sum of both rates.
// Ties keep their relative order.
func Sort(records []ShiftRecord, p Policy, key SortKey, desc bool) {
	value := func(r ShiftRecord) int {
		c := Calculate(r, p)
		switch key {
		case SortByWorked:
			return c.WorkedMinutes
		case SortByOvertime:
			return c.Overtime50Minutes + c.Overtime100Minutes
		}
		return r.Date.Year*10000 + int(r.Date.Month)*100 + r.Date.Day
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := value(records[i]), value(records[j])
		if desc {
			return a > b
		}
		return a < b
	})
}
