package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/shiftlog/internal/journey"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Calendar month (YYYY-MM). Defaults to this month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	today := journey.Today()
	year, month := today.Year, today.Month
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("month %q: expected YYYY-MM", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	p, err := ctx.Store.GetPolicy()
	if err != nil {
		return err
	}
	first := journey.NewDate(year, month, 1)
	last := journey.NewDate(year, month, journey.DaysIn(year, month))
	records, err := ctx.journeys(journey.Between(first, last))
	if err != nil {
		return err
	}

	ctx.printf("%s\n", titleStyle.Render(ctx.Locale.FormatMonth(year, month)))
	headers := ctx.Locale.WeekdayHeaders(p.WeekStart)
	for i, h := range headers {
		headers[i] = fmt.Sprintf("%-4s", h)
	}
	ctx.printf("%s\n", strings.Join(headers, ""))

	for _, week := range journey.CalendarMonth(year, month, p, records) {
		var b strings.Builder
		for _, day := range week {
			b.WriteString(calendarCell(day))
		}
		ctx.printf("%s\n", strings.TrimRight(b.String(), " "))
	}
	ctx.printf("\n%s work  %s off  %s logged\n",
		workStyle.Render("##"), offStyle.Render("##"), loggedStyle.Render("##"))
	return nil
}

func calendarCell(day *journey.CalendarDay) string {
	if day == nil {
		return "    "
	}
	text := fmt.Sprintf("%2d", day.Date.Day)
	switch day.Status {
	case journey.StatusWork:
		text = workStyle.Render(text)
	case journey.StatusOff:
		text = offStyle.Render(text)
	}
	if day.Logged {
		text = loggedStyle.Render(text)
	}
	return text + "  "
}
