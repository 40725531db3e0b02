package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

// Report is a printable listing of records over a period.
type Report struct {
	Title   string
	Records []journey.ShiftRecord
	Policy  journey.Policy
	Locale  timefmt.Locale
}

var (
	reportTitleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	reportHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	reportCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	reportFooterStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// Render draws the record table with a totals row, followed by the period
// summary. The distance column and line only appear when distance tracking
// is on.
func (r Report) Render() string {
	sum := journey.Summarize(r.Records, r.Policy, nil)

	headers := []string{"Date", "Start", "End", "Meal", "Worked", "OT 50%", "OT 100%"}
	if r.Policy.DistanceTracking {
		headers = append(headers, "KM")
	}
	headers = append(headers, "Notes")

	rows := make([][]string, 0, len(r.Records)+1)
	for _, rec := range r.Records {
		c := journey.Calculate(rec, r.Policy)
		date := r.Locale.FormatDate(rec.Date.At(0, time.UTC))
		if rec.IsHoliday {
			date += " *"
		}
		row := []string{
			date,
			clockOrEmpty(rec.StartAt, r.Locale),
			clockOrEmpty(rec.EndAt, r.Locale),
			fmt.Sprintf("%d", rec.MealMinutes),
			timefmt.MinutesToClock(c.WorkedMinutes),
			timefmt.MinutesToClock(c.Overtime50Minutes),
			timefmt.MinutesToClock(c.Overtime100Minutes),
		}
		if r.Policy.DistanceTracking {
			row = append(row, kmOrEmpty(c.Distance))
		}
		rows = append(rows, append(row, rec.Notes))
	}

	footer := []string{
		"Total", "", "", "",
		timefmt.MinutesToClock(sum.WorkedMinutes),
		timefmt.MinutesToClock(sum.Overtime50Minutes),
		timefmt.MinutesToClock(sum.Overtime100Minutes),
	}
	if r.Policy.DistanceTracking {
		footer = append(footer, sum.Distance.String())
	}
	rows = append(rows, append(footer, ""))
	last := len(rows)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return reportHeaderStyle
			case row == last-1:
				return reportFooterStyle
			default:
				return reportCellStyle
			}
		})

	var b strings.Builder
	if r.Title != "" {
		b.WriteString(reportTitleStyle.Render(r.Title))
		b.WriteString("\n")
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Journeys:       %d\n", sum.Count)
	fmt.Fprintf(&b, "Worked:         %s\n", timefmt.MinutesToClock(sum.WorkedMinutes))
	fmt.Fprintf(&b, "Overtime 50%%:   %s\n", timefmt.MinutesToClock(sum.Overtime50Minutes))
	fmt.Fprintf(&b, "Overtime 100%%:  %s\n", timefmt.MinutesToClock(sum.Overtime100Minutes))
	if r.Policy.DistanceTracking {
		fmt.Fprintf(&b, "Distance:       %s km\n", sum.Distance.String())
	}
	return b.String()
}

func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Render())
	return int64(n), err
}

// ToReport writes the rendered report to path.
func ToReport(r Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}

func clockOrEmpty(t *time.Time, l timefmt.Locale) string {
	if t == nil {
		return ""
	}
	return l.FormatClock(*t)
}
