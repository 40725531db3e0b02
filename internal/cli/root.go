package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sadopc/shiftlog/internal/config"
	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

type Context struct {
	Store      *store.Store
	Config     *config.Config
	ConfigPath string
	Locale     timefmt.Locale
	Out        io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// resolve finds a journey by date (YYYY-MM-DD), full id or unique id prefix.
func (c *Context) resolve(target string) (*journey.ShiftRecord, error) {
	if d, err := journey.ParseDate(target); err == nil {
		r, err := c.Store.GetJourneyByDate(d)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("no journey on %s: %w", d, store.ErrNotFound)
		}
		return r, nil
	}

	all, err := c.Store.ListJourneys(store.JourneyFilter{})
	if err != nil {
		return nil, err
	}
	var match *journey.ShiftRecord
	for i := range all {
		if all[i].ID == target {
			return &all[i], nil
		}
		if strings.HasPrefix(all[i].ID, target) {
			if match != nil {
				return nil, fmt.Errorf("id prefix %q is ambiguous", target)
			}
			match = &all[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("journey %q: %w", target, store.ErrNotFound)
	}
	return match, nil
}

// periodFlags select which journeys a command looks at. At most one of
// them may be set; none means the current accounting month.
type periodFlags struct {
	Date  string `help:"A single day (YYYY-MM-DD)."`
	Week  string `help:"The week containing this day (YYYY-MM-DD)."`
	Month string `help:"Accounting month (YYYY-MM)."`
	From  string `help:"Range start (YYYY-MM-DD), used with --to."`
	To    string `help:"Range end (YYYY-MM-DD), used with --from."`
	All   bool   `help:"Every journey."`
}

func (f *periodFlags) validate() error {
	set := 0
	for _, v := range []bool{f.Date != "", f.Week != "", f.Month != "", f.From != "" || f.To != "", f.All} {
		if v {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("use only one of --date, --week, --month, --from/--to, --all")
	}
	if (f.From == "") != (f.To == "") {
		return fmt.Errorf("--from and --to go together")
	}
	return nil
}

// resolve returns the filter for the chosen period and a label for it.
func (f *periodFlags) resolve(p journey.Policy, l timefmt.Locale, today journey.Date) (journey.Filter, string, error) {
	switch {
	case f.All:
		return journey.All(), "all journeys", nil
	case f.Date != "":
		d, err := journey.ParseDate(f.Date)
		if err != nil {
			return nil, "", err
		}
		return journey.OnDate(d), l.FormatDate(d.At(0, time.UTC)), nil
	case f.Week != "":
		d, err := journey.ParseDate(f.Week)
		if err != nil {
			return nil, "", err
		}
		first, last := journey.WeekOf(d, p.WeekStart)
		return journey.InWeek(d, p.WeekStart), rangeLabel(l, first, last), nil
	case f.From != "":
		from, err := journey.ParseDate(f.From)
		if err != nil {
			return nil, "", err
		}
		to, err := journey.ParseDate(f.To)
		if err != nil {
			return nil, "", err
		}
		if to.Before(from) {
			return nil, "", fmt.Errorf("--to %s is before --from %s", to, from)
		}
		return journey.Between(from, to), rangeLabel(l, from, to), nil
	}

	m := journey.AccountingMonthOf(today, p.CycleStartDay)
	if f.Month != "" {
		var err error
		if m, err = journey.ParseAccountingMonth(f.Month); err != nil {
			return nil, "", err
		}
	}
	return journey.InAccountingMonth(m, p.CycleStartDay), monthLabel(l, m, p.CycleStartDay), nil
}

func rangeLabel(l timefmt.Locale, from, to journey.Date) string {
	return l.FormatDate(from.At(0, time.UTC)) + " - " + l.FormatDate(to.At(0, time.UTC))
}

func monthLabel(l timefmt.Locale, m journey.AccountingMonth, cycleStartDay int) string {
	return fmt.Sprintf("%s (%s)", l.FormatMonth(m.Year, m.Month),
		rangeLabel(l, m.Start(cycleStartDay), m.End(cycleStartDay)))
}

// journeys returns every stored journey f accepts, newest first.
func (c *Context) journeys(f journey.Filter) ([]journey.ShiftRecord, error) {
	all, err := c.Store.ListJourneys(store.JourneyFilter{})
	if err != nil {
		return nil, err
	}
	return journey.Apply(all, f), nil
}

// period loads the policy and the journeys in the period pf selects.
func (c *Context) period(pf *periodFlags) (journey.Policy, []journey.ShiftRecord, string, error) {
	p, err := c.Store.GetPolicy()
	if err != nil {
		return p, nil, "", err
	}
	f, label, err := pf.resolve(p, c.Locale, journey.Today())
	if err != nil {
		return p, nil, "", err
	}
	records, err := c.journeys(f)
	return p, records, label, err
}
