package cli

import (
	"fmt"
	"time"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

type AddCmd struct {
	Date    string `arg:"" optional:"" help:"Day of the journey (YYYY-MM-DD). Defaults to today."`
	Start   string `short:"s" help:"Start time (HH:MM)."`
	End     string `short:"e" help:"End time (HH:MM)."`
	Meal    string `short:"m" help:"Meal break in minutes." default:"60"`
	Rest    string `short:"r" help:"Rest break in minutes."`
	Holiday bool   `help:"Holiday: all worked time counts at 100%."`
	KmStart string `name:"km-start" help:"Odometer reading at start."`
	KmEnd   string `name:"km-end" help:"Odometer reading at end."`
	Ref     string `help:"External reference number."`
	Notes   string `short:"n" help:"Notes."`
}

func (c *AddCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = journey.Today().String()
	}
	in := journey.Input{
		Date:        date,
		Start:       c.Start,
		End:         c.End,
		Meal:        c.Meal,
		Rest:        c.Rest,
		Holiday:     c.Holiday,
		KmStart:     c.KmStart,
		KmEnd:       c.KmEnd,
		ExternalRef: c.Ref,
		Notes:       c.Notes,
	}
	r, err := in.Record(time.Local)
	if err != nil {
		return err
	}

	created, err := ctx.Store.CreateJourney(r)
	if err != nil {
		return err
	}
	p, err := ctx.Store.GetPolicy()
	if err != nil {
		return err
	}

	ctx.printf("Added journey on %s (ID: %s)\n", created.Date, shortID(created.ID))
	ctx.printf("%s\n", describeCalc(journey.Calculate(*created, p), p))
	return nil
}

// EditCmd changes only the flags given. "-" clears an optional field.
type EditCmd struct {
	Target  string `arg:"" help:"Journey date (YYYY-MM-DD) or id prefix."`
	Date    string `help:"Move the journey to this day (YYYY-MM-DD)."`
	Start   string `short:"s" help:"Start time (HH:MM)."`
	End     string `short:"e" help:"End time (HH:MM)."`
	Meal    string `short:"m" help:"Meal break in minutes."`
	Rest    string `short:"r" help:"Rest break in minutes."`
	Holiday string `help:"Holiday flag." enum:"keep,yes,no" default:"keep"`
	KmStart string `name:"km-start" help:"Odometer reading at start."`
	KmEnd   string `name:"km-end" help:"Odometer reading at end."`
	Ref     string `help:"External reference number."`
	Notes   string `short:"n" help:"Notes."`
}

func (c *EditCmd) Run(ctx *Context) error {
	existing, err := ctx.resolve(c.Target)
	if err != nil {
		return err
	}

	in := journey.InputOf(*existing)
	if c.Date != "" {
		in.Date = c.Date
	}
	override(&in.Start, c.Start)
	override(&in.End, c.End)
	override(&in.Meal, c.Meal)
	override(&in.Rest, c.Rest)
	override(&in.KmStart, c.KmStart)
	override(&in.KmEnd, c.KmEnd)
	override(&in.ExternalRef, c.Ref)
	override(&in.Notes, c.Notes)
	switch c.Holiday {
	case "yes":
		in.Holiday = true
	case "no":
		in.Holiday = false
	}

	loc := time.Local
	if existing.StartAt != nil {
		loc = existing.StartAt.Location()
	}
	r, err := in.Record(loc)
	if err != nil {
		return err
	}
	r.ID = existing.ID

	updated, err := ctx.Store.UpdateJourney(r)
	if err != nil {
		return err
	}
	p, err := ctx.Store.GetPolicy()
	if err != nil {
		return err
	}

	ctx.printf("Updated journey on %s (ID: %s)\n", updated.Date, shortID(updated.ID))
	ctx.printf("%s\n", describeCalc(journey.Calculate(*updated, p), p))
	return nil
}

func override(dst *string, v string) {
	switch v {
	case "":
	case "-":
		*dst = ""
	default:
		*dst = v
	}
}

type DeleteCmd struct {
	Target string `arg:"" help:"Journey date (YYYY-MM-DD) or id prefix."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	r, err := ctx.resolve(c.Target)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteJourney(r.ID); err != nil {
		return err
	}
	ctx.printf("Deleted journey on %s (ID: %s)\n", r.Date, shortID(r.ID))
	return nil
}

type ListCmd struct {
	Period  periodFlags `embed:""`
	Holiday string      `help:"Holidays only (yes), or none (no)." enum:"any,yes,no" default:"any"`
	Km      string      `help:"Journeys with (yes) or without (no) odometer readings." enum:"any,yes,no" default:"any"`
	Search  string      `short:"q" help:"Match reference or notes."`
	Sort    string      `help:"Sort by date, hours or extra." enum:"date,hours,extra" default:"date"`
	Order   string      `help:"Sort order." enum:"asc,desc" default:"desc"`
	Limit   int         `short:"l" help:"Show at most this many."`
}

func (c *ListCmd) Validate() error {
	return c.Period.validate()
}

func (c *ListCmd) Run(ctx *Context) error {
	p, records, label, err := ctx.period(&c.Period)
	if err != nil {
		return err
	}

	var filters []journey.Filter
	if c.Holiday != "any" {
		filters = append(filters, journey.Holidays(c.Holiday == "yes"))
	}
	if c.Km != "any" {
		filters = append(filters, journey.WithDistance(c.Km == "yes"))
	}
	if c.Search != "" {
		filters = append(filters, journey.Matching(c.Search))
	}
	records = journey.Apply(records, journey.And(filters...))

	key, _ := journey.ParseSortKey(c.Sort)
	journey.Sort(records, p, key, c.Order == "desc")
	if c.Limit > 0 && len(records) > c.Limit {
		records = records[:c.Limit]
	}

	if len(records) == 0 {
		ctx.printf("No journeys in %s.\n", label)
		return nil
	}

	ctx.printf("%s\n", label)
	ctx.printf("%s\n", journeyTable(records, p, ctx.Locale))
	sum := journey.Summarize(records, p, nil)
	ctx.printf("%d journeys, worked %s\n", sum.Count, timefmt.MinutesToClock(sum.WorkedMinutes))
	return nil
}

func describeCalc(c journey.Calculation, p journey.Policy) string {
	s := fmt.Sprintf("Worked %s, overtime 50%% %s, overtime 100%% %s",
		timefmt.MinutesToClock(c.WorkedMinutes),
		timefmt.MinutesToClock(c.Overtime50Minutes),
		timefmt.MinutesToClock(c.Overtime100Minutes))
	if p.DistanceTracking && c.Distance != nil {
		s += fmt.Sprintf(", %s km", c.Distance.String())
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
