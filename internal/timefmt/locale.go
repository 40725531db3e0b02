package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// Locale holds the date layouts and names used for display.
type Locale struct {
	Tag         string
	DateLayout  string
	ClockLayout string
	Months      [12]string
	Weekdays    [7]string // Sunday first
	MonthOf     string    // joins month and year, e.g. "%s de %d"
}

var (
	PtBR = Locale{
		Tag:         "pt-BR",
		DateLayout:  "02/01/2006",
		ClockLayout: "15:04",
		Months: [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
		Weekdays: [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"},
		MonthOf:  "%s de %d",
	}

	EnUS = Locale{
		Tag:         "en-US",
		DateLayout:  "01/02/2006",
		ClockLayout: "15:04",
		Months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		Weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		MonthOf:  "%s %d",
	}
)

// LookupLocale returns the locale for tag, falling back to pt-BR.
func LookupLocale(tag string) Locale {
	switch strings.ToLower(tag) {
	case "en", "en-us", "en_us":
		return EnUS
	default:
		return PtBR
	}
}

func (l Locale) FormatDate(t time.Time) string {
	return t.Format(l.DateLayout)
}

func (l Locale) FormatClock(t time.Time) string {
	return t.Format(l.ClockLayout)
}

func (l Locale) FormatDateTime(t time.Time) string {
	return t.Format(l.DateLayout + " " + l.ClockLayout)
}

// FormatMonth renders e.g. "março de 2024".
func (l Locale) FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf(l.MonthOf, l.Months[month-1], year)
}

// WeekdayHeaders returns weekday abbreviations starting at start.
func (l Locale) WeekdayHeaders(start time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = l.Weekdays[(int(start)+i)%7]
	}
	return out
}
