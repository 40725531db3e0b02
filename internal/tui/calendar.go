package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

// calendarModel shows one calendar month coloured by the rotation.
type calendarModel struct {
	store  *store.Store
	locale timefmt.Locale
	width  int
	height int

	year   int
	month  time.Month
	policy journey.Policy
	weeks  [][]*journey.CalendarDay
}

func newCalendarModel(s *store.Store, l timefmt.Locale) calendarModel {
	today := journey.Today()
	return calendarModel{
		store:  s,
		locale: l,
		year:   today.Year,
		month:  today.Month,
		policy: journey.DefaultPolicy(),
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	year   int
	month  time.Month
	policy journey.Policy
	weeks  [][]*journey.CalendarDay
}

func (c calendarModel) refresh() tea.Cmd {
	year, month := c.year, c.month
	return func() tea.Msg {
		p, _ := loadPolicy(c.store.GetPolicy())
		first := journey.NewDate(year, month, 1)
		last := journey.NewDate(year, month, journey.DaysIn(year, month))
		records, err := c.store.ListJourneys(store.JourneyFilter{From: &first, To: &last})
		if err != nil {
			return errStatus("Calendar", err)
		}
		return calendarDataMsg{
			year:   year,
			month:  month,
			policy: p,
			weeks:  journey.CalendarMonth(year, month, p, records),
		}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		// Drop stale replies after fast navigation.
		if msg.year != c.year || msg.month != c.month {
			return c, nil
		}
		c.policy = msg.policy
		c.weeks = msg.weeks
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.year, c.month = addMonths(c.year, c.month, -1)
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			c.year, c.month = addMonths(c.year, c.month, 1)
			return c, c.refresh()
		case key.Matches(msg, keys.Back):
			today := journey.Today()
			c.year, c.month = today.Year, today.Month
			return c, c.refresh()
		case key.Matches(msg, keys.New):
			return c, func() tea.Msg { return openJourneyFormMsg{date: journey.Today()} }
		}
	}
	return c, nil
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func (c calendarModel) view() string {
	w := c.width - 4
	title := titleStyle.Render("Calendar") + "  " + highlightStyle.Render(c.locale.FormatMonth(c.year, c.month))

	var rows []string
	rows = append(rows, title, "")

	headers := c.locale.WeekdayHeaders(c.policy.WeekStart)
	var hb strings.Builder
	for _, h := range headers {
		hb.WriteString(mutedStyle.Render(fmt.Sprintf("%-5s", h)))
	}
	rows = append(rows, "  "+hb.String())

	today := journey.Today()
	var work, off, logged int
	for _, week := range c.weeks {
		var b strings.Builder
		for _, day := range week {
			b.WriteString(c.cell(day, today))
			if day == nil {
				continue
			}
			switch day.Status {
			case journey.StatusWork:
				work++
			case journey.StatusOff:
				off++
			}
			if day.Logged {
				logged++
			}
		}
		rows = append(rows, "  "+b.String())
	}

	rows = append(rows, "")
	if c.policy.Rotation.IsZero() {
		rows = append(rows, mutedStyle.Render("  No rotation configured. Set one in Settings."))
	} else {
		rows = append(rows, fmt.Sprintf("  %s %d work days  %s %d off  %s %d logged",
			workDayStyle.Render("●"), work, offDayStyle.Render("○"), off, loggedDayStyle.Render("__"), logged))
	}
	rows = append(rows, "", mutedStyle.Render("  ←/→: change month  esc: this month  n: log today"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (c calendarModel) cell(day *journey.CalendarDay, today journey.Date) string {
	if day == nil {
		return "     "
	}
	style := lipgloss.NewStyle()
	switch day.Status {
	case journey.StatusWork:
		style = workDayStyle
	case journey.StatusOff:
		style = offDayStyle
	}
	if day.Logged {
		style = style.Inherit(loggedDayStyle)
	}
	if day.Date == today {
		style = style.Inherit(todayStyle)
	}
	return style.Render(fmt.Sprintf("%2d", day.Date.Day)) + "   "
}
