package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/logger"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Show the calculation settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Change the calculation settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetPolicy()
	if err != nil {
		return err
	}
	onboarded, err := ctx.Store.IsOnboarded()
	if err != nil {
		return err
	}

	rotation, anchor := "none", "not set"
	if !p.Rotation.IsZero() {
		rotation = p.Rotation.String()
	}
	if p.RotationAnchor != nil {
		anchor = p.RotationAnchor.String()
	}
	distance := "off"
	if p.DistanceTracking {
		distance = "on"
	}

	ctx.printf("  Base shift       %s\n", timefmt.MinutesToClock(p.BaseShiftMinutes))
	ctx.printf("  Cycle start day  %d\n", p.CycleStartDay)
	ctx.printf("  Rotation         %s\n", rotation)
	ctx.printf("  Rotation anchor  %s\n", anchor)
	ctx.printf("  Week starts on   %s\n", strings.ToLower(p.WeekStart.String()))
	ctx.printf("  Distance         %s\n", distance)
	if !onboarded {
		ctx.printf("\nDefaults in use. Change them with `shiftlog settings set`.\n")
	}
	today := journey.Today()
	ctx.printf("\nToday (%s) is %s.\n", today, p.Rotation.StatusOn(today, p.RotationAnchor))
	return nil
}

// SettingsSetCmd changes only the flags given. Saving also completes
// onboarding.
type SettingsSetCmd struct {
	Base      string `help:"Base shift length (HH:MM)."`
	Cycle     int    `help:"Day of the month the accounting month starts (1-31)."`
	Rotation  string `help:"Rotation pattern such as 6x2, or none."`
	Anchor    string `help:"First work day of a rotation block (YYYY-MM-DD), or - to clear."`
	WeekStart string `name:"week-start" help:"First day of the week (sunday, monday, ...)."`
	Distance  string `help:"Odometer tracking (on or off)."`
}

func (c *SettingsSetCmd) Validate() error {
	switch c.Distance {
	case "", "on", "off":
		return nil
	}
	return fmt.Errorf("--distance must be on or off")
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetPolicy()
	if errors.Is(err, journey.ErrInvalidConfiguration) {
		logger.Warn("stored policy is invalid, starting from defaults", "err", err)
		p = journey.DefaultPolicy()
	} else if err != nil {
		return err
	}

	if c.Base != "" {
		if p.BaseShiftMinutes, err = timefmt.ClockToMinutes(c.Base); err != nil {
			return fmt.Errorf("%w: base shift: %v", journey.ErrInvalidConfiguration, err)
		}
	}
	if c.Cycle != 0 {
		p.CycleStartDay = c.Cycle
	}
	switch strings.ToLower(c.Rotation) {
	case "":
	case "none", "-":
		p.Rotation = journey.Rotation{}
	default:
		if p.Rotation, err = journey.ParseRotation(c.Rotation); err != nil {
			return err
		}
	}
	switch c.Anchor {
	case "":
	case "-":
		p.RotationAnchor = nil
	default:
		d, err := journey.ParseDate(c.Anchor)
		if err != nil {
			return fmt.Errorf("%w: anchor: %v", journey.ErrInvalidConfiguration, err)
		}
		p.RotationAnchor = &d
	}
	if c.WeekStart != "" {
		if p.WeekStart, err = store.ParseWeekday(c.WeekStart); err != nil {
			return err
		}
	}
	switch c.Distance {
	case "on":
		p.DistanceTracking = true
	case "off":
		p.DistanceTracking = false
	}

	if err := ctx.Store.CompleteOnboarding(p); err != nil {
		return err
	}
	ctx.printf("Settings saved.\n")
	return nil
}
