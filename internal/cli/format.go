package cli

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	workStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	offStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	loggedStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	holidayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func journeyTable(records []journey.ShiftRecord, p journey.Policy, l timefmt.Locale) string {
	headers := []string{"ID", "Date", "Start", "End", "Worked", "OT 50%", "OT 100%"}
	if p.DistanceTracking {
		headers = append(headers, "KM")
	}
	headers = append(headers, "Ref")

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		c := journey.Calculate(r, p)
		date := l.FormatDate(r.Date.At(0, time.UTC))
		if r.IsHoliday {
			date += " *"
		}
		row := []string{
			shortID(r.ID),
			date,
			clock(r.StartAt, l),
			clock(r.EndAt, l),
			timefmt.MinutesToClock(c.WorkedMinutes),
			timefmt.MinutesToClock(c.Overtime50Minutes),
			timefmt.MinutesToClock(c.Overtime100Minutes),
		}
		if p.DistanceTracking {
			km := ""
			if c.Distance != nil {
				km = c.Distance.String()
			}
			row = append(row, km)
		}
		rows = append(rows, append(row, r.ExternalRef))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func clock(t *time.Time, l timefmt.Locale) string {
	if t == nil {
		return "--:--"
	}
	return l.FormatClock(*t)
}
