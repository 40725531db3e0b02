package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

var csvHeader = []string{
	"Date", "Start", "End", "Meal (min)", "Rest (min)", "Holiday",
	"KM Start", "KM End", "Ref", "Notes",
	"Worked", "Overtime 50%", "Overtime 100%", "Distance",
}

// ToCSV writes one row per record to path, with the derived totals of each
// record appended after the stored fields.
func ToCSV(records []journey.ShiftRecord, p journey.Policy, l timefmt.Locale, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, records, p, l)
}

func WriteCSV(out io.Writer, records []journey.ShiftRecord, p journey.Policy, l timefmt.Locale) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		c := journey.Calculate(r, p)
		rest := 0
		if r.RestMinutes != nil {
			rest = *r.RestMinutes
		}
		holiday := "no"
		if r.IsHoliday {
			holiday = "yes"
		}

		row := []string{
			r.Date.String(),
			clockOrEmpty(r.StartAt, l),
			clockOrEmpty(r.EndAt, l),
			strconv.Itoa(r.MealMinutes),
			strconv.Itoa(rest),
			holiday,
			kmOrEmpty(r.KmStart),
			kmOrEmpty(r.KmEnd),
			r.ExternalRef,
			r.Notes,
			timefmt.MinutesToClock(c.WorkedMinutes),
			timefmt.MinutesToClock(c.Overtime50Minutes),
			timefmt.MinutesToClock(c.Overtime100Minutes),
			kmOrEmpty(c.Distance),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func kmOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
