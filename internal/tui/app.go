package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/shiftlog/internal/export"
	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/logger"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

var exportFormats = []string{"CSV", "JSON", "Report"}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	opts   Options
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	journeys  journeysModel
	calendar  calendarModel
	reports   reportsModel
	settings  settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store, opts Options) App {
	if opts.Locale.DateLayout == "" {
		opts.Locale = timefmt.PtBR
	}
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		opts:       opts,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s, opts.Locale),
		journeys:   newJourneysModel(s, opts.Locale),
		calendar:   newCalendarModel(s, opts.Locale),
		reports:    newReportsModel(s, opts.Locale),
		settings:   newSettingsModel(s, opts.Locale),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.refresh(),
		a.checkOnboarding(),
	)
}

func (a App) checkOnboarding() tea.Cmd {
	return func() tea.Msg {
		done, err := a.store.IsOnboarded()
		if err != nil {
			return errStatus("Settings", err)
		}
		return onboardingMsg{pending: !done}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.journeys.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A form, search box or confirmation owns the keyboard.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewJourneys)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewCalendar)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewReports)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		if msg.isError {
			logger.Warn("tui error", "msg", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil

	case journeysChangedMsg:
		a.status, a.statusError = msg.status, false
		return a, a.refreshAll()

	case policyChangedMsg:
		a.status, a.statusError = msg.status, false
		return a, a.refreshAll()

	case onboardingMsg:
		if !msg.pending {
			return a, nil
		}
		a.activeView = viewSettings
		var cmd tea.Cmd
		a.settings, cmd = a.settings.startOnboarding()
		return a, cmd

	case openJourneyFormMsg:
		a.activeView = viewJourneys
		var cmd tea.Cmd
		a.journeys, cmd = a.journeys.showForm(nil, msg.date)
		return a, cmd

	// Data replies go to their view even when another one is showing.
	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case journeysDataMsg:
		var cmd tea.Cmd
		a.journeys, cmd = a.journeys.update(msg)
		return a, cmd
	case calendarDataMsg:
		var cmd tea.Cmd
		a.calendar, cmd = a.calendar.update(msg)
		return a, cmd
	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewJourneys:
		a.journeys, cmd = a.journeys.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewJourneys:
		return a.journeys.capturing()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewJourneys:
		return a.journeys.refresh()
	case viewCalendar:
		return a.calendar.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.dashboard.refresh(),
		a.journeys.refresh(),
		a.calendar.refresh(),
		a.reports.refresh(),
		a.settings.refresh(),
	)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewJourneys:
		content = a.journeys.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("shiftlog")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(status)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	rows := []string{
		titleStyle.Render("Export"),
		mutedStyle.Render(a.dashboard.label()),
		"",
	}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the accounting month shown on the dashboard in the
// chosen format.
func (a App) doExport(format int) tea.Cmd {
	month := a.dashboard.month
	return func() tea.Msg {
		p, err := a.store.GetPolicy()
		if err != nil {
			return errStatus("Export", err)
		}
		if month == (journey.AccountingMonth{}) {
			month = journey.AccountingMonthOf(journey.Today(), p.CycleStartDay)
		}
		from, to := month.Start(p.CycleStartDay), month.End(p.CycleStartDay)
		records, err := a.store.ListJourneys(store.JourneyFilter{From: &from, To: &to})
		if err != nil {
			return errStatus("Export", err)
		}
		journey.Sort(records, p, journey.SortByDate, false)

		dir := a.opts.ExportDir
		if dir == "" {
			dir = "."
		}
		base := filepath.Join(dir, fmt.Sprintf("shiftlog_%s_%s", month, journey.Today()))

		var path string
		switch format {
		case 0:
			path = base + ".csv"
			err = export.ToCSV(records, p, a.opts.Locale, path)
		case 1:
			path = base + ".json"
			err = export.ToJSON(records, p, path)
		default:
			path = base + ".txt"
			err = export.ToReport(export.Report{
				Title:   monthLabel(a.opts.Locale, month, p.CycleStartDay),
				Records: records,
				Policy:  p,
				Locale:  a.opts.Locale,
			}, path)
		}
		if err != nil {
			return errStatus(exportFormats[format], err)
		}
		logger.Info("tui export", "path", path, "journeys", len(records))
		return exportDoneMsg{path: path}
	}
}
