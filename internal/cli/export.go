package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sadopc/shiftlog/internal/export"
	"github.com/sadopc/shiftlog/internal/journey"
)

type ExportCmd struct {
	CSV    ExportCSVCmd    `cmd:"" name:"csv" help:"Export journeys as CSV."`
	JSON   ExportJSONCmd   `cmd:"" name:"json" help:"Export journeys as JSON."`
	Report ExportReportCmd `cmd:"" help:"Print a report of the period."`
}

type ExportCSVCmd struct {
	Period periodFlags `embed:""`
	Output string      `short:"o" help:"Output file. Defaults to the export directory."`
}

func (c *ExportCSVCmd) Validate() error { return c.Period.validate() }

func (c *ExportCSVCmd) Run(ctx *Context) error {
	p, records, _, err := ctx.period(&c.Period)
	if err != nil {
		return err
	}
	journey.Sort(records, p, journey.SortByDate, false)

	path := ctx.exportPath(c.Output, "csv")
	if err := export.ToCSV(records, p, ctx.Locale, path); err != nil {
		return err
	}
	ctx.printf("Exported %d journeys to %s\n", len(records), path)
	return nil
}

type ExportJSONCmd struct {
	Period periodFlags `embed:""`
	Output string      `short:"o" help:"Output file. Defaults to the export directory."`
}

func (c *ExportJSONCmd) Validate() error { return c.Period.validate() }

func (c *ExportJSONCmd) Run(ctx *Context) error {
	p, records, _, err := ctx.period(&c.Period)
	if err != nil {
		return err
	}
	journey.Sort(records, p, journey.SortByDate, false)

	path := ctx.exportPath(c.Output, "json")
	if err := export.ToJSON(records, p, path); err != nil {
		return err
	}
	ctx.printf("Exported %d journeys to %s\n", len(records), path)
	return nil
}

type ExportReportCmd struct {
	Period periodFlags `embed:""`
	Output string      `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ExportReportCmd) Validate() error { return c.Period.validate() }

func (c *ExportReportCmd) Run(ctx *Context) error {
	p, records, label, err := ctx.period(&c.Period)
	if err != nil {
		return err
	}
	journey.Sort(records, p, journey.SortByDate, false)

	r := export.Report{Title: label, Records: records, Policy: p, Locale: ctx.Locale}
	if c.Output == "" || c.Output == "-" {
		_, err := r.WriteTo(ctx.out())
		return err
	}
	if err := export.ToReport(r, c.Output); err != nil {
		return err
	}
	ctx.printf("Report written to %s\n", c.Output)
	return nil
}

func (c *Context) exportPath(output, ext string) string {
	if output != "" {
		return output
	}
	dir := "."
	if c.Config != nil && c.Config.ExportDir != "" {
		dir = c.Config.ExportDir
	}
	return filepath.Join(dir, fmt.Sprintf("shiftlog_%s.%s", journey.Today(), ext))
}
