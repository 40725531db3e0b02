package cli

import (
	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

type SummaryCmd struct {
	Period periodFlags `embed:""`
}

func (c *SummaryCmd) Validate() error {
	return c.Period.validate()
}

func (c *SummaryCmd) Run(ctx *Context) error {
	p, records, label, err := ctx.period(&c.Period)
	if err != nil {
		return err
	}
	sum := journey.Summarize(records, p, nil)

	ctx.printf("%s\n", titleStyle.Render(label))
	ctx.printf("  Journeys       %d\n", sum.Count)
	ctx.printf("  Worked         %s\n", timefmt.MinutesToClock(sum.WorkedMinutes))
	ctx.printf("  Overtime 50%%   %s\n", timefmt.MinutesToClock(sum.Overtime50Minutes))
	ctx.printf("  Overtime 100%%  %s\n", timefmt.MinutesToClock(sum.Overtime100Minutes))
	if p.DistanceTracking {
		ctx.printf("  Distance       %s km\n", sum.Distance.String())
	}
	return nil
}
