package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

type reportMode int

const (
	reportWeekly reportMode = iota
	reportMonthly
)

type reportsModel struct {
	store  *store.Store
	locale timefmt.Locale
	width  int
	height int

	mode   reportMode
	offset int // weeks or accounting months back from the current one

	policy  journey.Policy
	from    journey.Date
	to      journey.Date
	label   string
	days    []journey.DailyTotal
	summary journey.Summary

	chart barchart.Model
}

func newReportsModel(s *store.Store, l timefmt.Locale) reportsModel {
	return reportsModel{
		store:  s,
		locale: l,
		policy: journey.DefaultPolicy(),
		chart:  barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	policy  journey.Policy
	from    journey.Date
	to      journey.Date
	label   string
	days    []journey.DailyTotal
	summary journey.Summary
}

func (r reportsModel) refresh() tea.Cmd {
	mode, offset, l := r.mode, r.offset, r.locale
	return func() tea.Msg {
		p, _ := loadPolicy(r.store.GetPolicy())
		today := journey.Today()

		var from, to journey.Date
		var label string
		switch mode {
		case reportMonthly:
			m := shiftMonth(journey.AccountingMonthOf(today, p.CycleStartDay), -offset)
			from, to = m.Start(p.CycleStartDay), m.End(p.CycleStartDay)
			label = monthLabel(l, m, p.CycleStartDay)
		default:
			from, to = journey.WeekOf(today.AddDays(-7*offset), p.WeekStart)
			label = formatDate(l, from) + " - " + formatDate(l, to)
		}

		records, err := r.store.ListJourneys(store.JourneyFilter{From: &from, To: &to})
		if err != nil {
			return errStatus("Reports", err)
		}
		return reportsDataMsg{
			policy:  p,
			from:    from,
			to:      to,
			label:   label,
			days:    journey.Daily(records, p, from, to),
			summary: journey.Summarize(records, p, nil),
		}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.policy = msg.policy
		r.from, r.to = msg.from, msg.to
		r.label = msg.label
		r.days = msg.days
		r.summary = msg.summary
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Filter):
			if r.mode == reportWeekly {
				r.mode = reportMonthly
			} else {
				r.mode = reportWeekly
			}
			r.offset = 0
			return r, r.refresh()
		}
	}
	return r, nil
}

// buildChart stacks regular time, 50% and 100% overtime per day, in hours.
func (r *reportsModel) buildChart() {
	chartWidth := max(r.width-8, 20)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}
	r.chart = barchart.New(chartWidth, chartHeight)

	regular := lipgloss.NewStyle().Foreground(colorSuccess)
	ot50 := lipgloss.NewStyle().Foreground(colorWarning)
	ot100 := lipgloss.NewStyle().Foreground(colorAccent)

	var bars []barchart.BarData
	for _, d := range r.days {
		base := d.WorkedMinutes - d.Overtime50Minutes - d.Overtime100Minutes
		label := fmt.Sprintf("%02d", d.Date.Day)
		if r.mode == reportWeekly {
			label = r.locale.Weekdays[d.Date.Weekday()] + " " + label
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "Regular", Value: float64(max(base, 0)) / 60, Style: regular},
				{Name: "OT 50%", Value: float64(d.Overtime50Minutes) / 60, Style: ot50},
				{Name: "OT 100%", Value: float64(d.Overtime100Minutes) / 60, Style: ot100},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	weeklyTab := inactiveTabStyle.Render("Weekly")
	monthlyTab := inactiveTabStyle.Render("Accounting month")
	if r.mode == reportWeekly {
		weeklyTab = activeTabStyle.Render("Weekly")
	} else {
		monthlyTab = activeTabStyle.Render("Accounting month")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", weeklyTab, monthlyTab, "  ", mutedStyle.Render(r.label),
	)

	legend := fmt.Sprintf("  %s regular  %s overtime 50%%  %s overtime 100%%",
		successStyle.Render("●"), warningStyle.Render("●"), accentStyle.Render("●"))

	nav := mutedStyle.Render("  ←/→: navigate  f: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", legend, "", r.renderTotals(), "", nav,
		),
	)
}

func (r reportsModel) renderTotals() string {
	if r.summary.Count == 0 {
		return mutedStyle.Render("  No journeys in this period")
	}

	rows := []string{
		fmt.Sprintf("  %-16s %d", "Journeys", r.summary.Count),
		fmt.Sprintf("  %-16s %s", "Worked", figureStyle.Render(hm(r.summary.WorkedMinutes))),
		fmt.Sprintf("  %-16s %s", "Overtime 50%", overtimeStyle.Render(hm(r.summary.Overtime50Minutes))),
		fmt.Sprintf("  %-16s %s", "Overtime 100%", holidayStyle.Render(hm(r.summary.Overtime100Minutes))),
	}
	if r.policy.DistanceTracking {
		rows = append(rows, fmt.Sprintf("  %-16s %s km", "Distance", r.summary.Distance.StringFixed(1)))
	}
	return strings.Join(rows, "\n")
}
