package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

type dashboardModel struct {
	store  *store.Store
	locale timefmt.Locale
	width  int
	height int

	// offset counts accounting months back (negative) or forward from the
	// current one.
	offset int

	policy      journey.Policy
	month       journey.AccountingMonth
	summary     journey.Summary
	todayStatus journey.ShiftStatus
	today       *journey.ShiftRecord
	recent      []journey.ShiftRecord
}

func newDashboardModel(s *store.Store, l timefmt.Locale) dashboardModel {
	return dashboardModel{store: s, locale: l, policy: journey.DefaultPolicy()}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	policy      journey.Policy
	month       journey.AccountingMonth
	summary     journey.Summary
	todayStatus journey.ShiftStatus
	today       *journey.ShiftRecord
	recent      []journey.ShiftRecord
	err         error
}

func (d dashboardModel) refresh() tea.Cmd {
	offset := d.offset
	return func() tea.Msg {
		p, perr := loadPolicy(d.store.GetPolicy())
		today := journey.Today()
		month := shiftMonth(journey.AccountingMonthOf(today, p.CycleStartDay), offset)

		from, to := month.Start(p.CycleStartDay), month.End(p.CycleStartDay)
		records, err := d.store.ListJourneys(store.JourneyFilter{From: &from, To: &to})
		if err != nil {
			return errStatus("Dashboard", err)
		}
		recent, err := d.store.ListJourneys(store.JourneyFilter{Limit: 5})
		if err != nil {
			return errStatus("Dashboard", err)
		}
		todays, err := d.store.GetJourneyByDate(today)
		if err != nil {
			return errStatus("Dashboard", err)
		}

		return dashboardDataMsg{
			policy:      p,
			month:       month,
			summary:     journey.Summarize(records, p, nil),
			todayStatus: p.Rotation.StatusOn(today, p.RotationAnchor),
			today:       todays,
			recent:      recent,
			err:         perr,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.policy = msg.policy
		d.month = msg.month
		d.summary = msg.summary
		d.todayStatus = msg.todayStatus
		d.today = msg.today
		d.recent = msg.recent
		if msg.err != nil {
			return d, func() tea.Msg { return errStatus("Policy", msg.err) }
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			d.offset--
			return d, d.refresh()
		case key.Matches(msg, keys.Right):
			d.offset++
			return d, d.refresh()
		case key.Matches(msg, keys.Back):
			d.offset = 0
			return d, d.refresh()
		case key.Matches(msg, keys.New):
			return d, func() tea.Msg { return openJourneyFormMsg{date: journey.Today()} }
		}
	}
	return d, nil
}

// label describes the accounting month on screen.
func (d dashboardModel) label() string {
	if d.month == (journey.AccountingMonth{}) {
		return ""
	}
	return monthLabel(d.locale, d.month, d.policy.CycleStartDay)
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderMonthPanel(w),
		d.renderTodayPanel(w),
		d.renderRecentPanel(w),
	)
}

func (d dashboardModel) renderMonthPanel(w int) string {
	title := titleStyle.Render("Accounting month")
	label := mutedStyle.Render(d.label())

	figures := []string{
		fmt.Sprintf("%s %s", mutedStyle.Render("Worked"), figureStyle.Render(hm(d.summary.WorkedMinutes))),
		fmt.Sprintf("%s %s", mutedStyle.Render("OT 50%"), overtimeStyle.Render(hm(d.summary.Overtime50Minutes))),
		fmt.Sprintf("%s %s", mutedStyle.Render("OT 100%"), holidayStyle.Render(hm(d.summary.Overtime100Minutes))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Journeys"), highlightStyle.Render(fmt.Sprint(d.summary.Count))),
	}
	if d.policy.DistanceTracking {
		figures = append(figures, fmt.Sprintf("%s %s",
			mutedStyle.Render("Distance"), highlightStyle.Render(d.summary.Distance.StringFixed(1)+" km")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+label,
		"",
		strings.Join(figures, "    "),
		"",
		mutedStyle.Render("←/→: change month  esc: current month"),
	)
	if d.offset == 0 {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	today := journey.Today()
	title := titleStyle.Render("Today") + "  " + mutedStyle.Render(formatDate(d.locale, today))

	var status string
	switch d.todayStatus {
	case journey.StatusWork:
		status = workDayStyle.Render("● work day")
	case journey.StatusOff:
		status = offDayStyle.Render("○ day off")
	default:
		status = mutedStyle.Render("no rotation configured")
	}

	var logged string
	if d.today == nil {
		logged = mutedStyle.Render("Not logged yet. Press n to add today's journey.")
	} else {
		c := journey.Calculate(*d.today, d.policy)
		logged = fmt.Sprintf("%s - %s  worked %s",
			formatClock(d.locale, d.today.StartAt), formatClock(d.locale, d.today.EndAt),
			figureStyle.Render(hm(c.WorkedMinutes)))
		if ot := c.Overtime50Minutes + c.Overtime100Minutes; ot > 0 {
			logged += "  overtime " + overtimeStyle.Render(hm(ot))
		}
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, status, logged))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent journeys")
	if len(d.recent) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No journeys yet"),
		))
	}

	rows := []string{title}
	for _, r := range d.recent {
		c := journey.Calculate(r, d.policy)
		mark := " "
		if r.IsHoliday {
			mark = holidayStyle.Render("*")
		}
		rows = append(rows, fmt.Sprintf("  %s %s  %s - %s  %s",
			mark,
			formatDate(d.locale, r.Date),
			formatClock(d.locale, r.StartAt),
			formatClock(d.locale, r.EndAt),
			hm(c.WorkedMinutes),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
