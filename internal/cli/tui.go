package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/shiftlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	opts := tui.Options{Locale: ctx.Locale}
	if ctx.Config != nil {
		opts.ExportDir = ctx.Config.ExportDir
	}
	app := tui.NewApp(ctx.Store, opts)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
