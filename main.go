package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sadopc/shiftlog/internal/cli"
	"github.com/sadopc/shiftlog/internal/config"
	"github.com/sadopc/shiftlog/internal/logger"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

var version = "dev"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	DB      string `name:"db" help:"Database path (overrides config)." type:"path"`
	Debug   bool   `help:"Log debug output to stderr."`

	Tui      cli.TuiCmd      `cmd:"" default:"1" help:"Launch the interactive TUI."`
	Add      cli.AddCmd      `cmd:"" help:"Log a journey."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit a journey."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a journey."`
	List     cli.ListCmd     `cmd:"" help:"List journeys."`
	Summary  cli.SummaryCmd  `cmd:"" help:"Totals for a period."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month with rotation days."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change calculation settings."`
	Export   cli.ExportCmd   `cmd:"" help:"Export journeys."`
	Conf     cli.ConfigCmd   `cmd:"" name:"config" help:"Show the effective configuration."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("shiftlog"),
		kong.Description("Work journey log: hours, overtime and mileage."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context) error {
	path := CLI.Config
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.LogDir}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	return ctx.Run(&cli.Context{
		Store:      s,
		Config:     cfg,
		ConfigPath: path,
		Locale:     timefmt.LookupLocale(cfg.Locale),
	})
}
