package tui

import (
	"time"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewJourneys
	viewCalendar
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Journeys", "Calendar", "Reports", "Settings"}

// Options configure the app beyond its store.
type Options struct {
	Locale    timefmt.Locale
	ExportDir string
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// journeysChangedMsg is sent after a create, update or delete so every view
// can reload.
type journeysChangedMsg struct {
	status string
}

type policyChangedMsg struct {
	status string
}

// openJourneyFormMsg asks the journeys view to open its form for a day.
type openJourneyFormMsg struct {
	date journey.Date
}

// onboardingMsg reports whether first-run setup is still pending.
type onboardingMsg struct {
	pending bool
}

// --- Helpers ---

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: prefix + ": " + err.Error(), isError: true}
}

func formatDate(l timefmt.Locale, d journey.Date) string {
	return l.FormatDate(d.At(0, time.UTC))
}

func formatClock(l timefmt.Locale, t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return l.FormatClock(*t)
}

func hm(minutes int) string {
	return timefmt.MinutesToClock(minutes)
}

// monthLabel renders an accounting month with its day range, e.g.
// "março de 2024 (21/03/2024 - 20/04/2024)".
func monthLabel(l timefmt.Locale, m journey.AccountingMonth, cycleStartDay int) string {
	return l.FormatMonth(m.Year, m.Month) + " (" +
		formatDate(l, m.Start(cycleStartDay)) + " - " + formatDate(l, m.End(cycleStartDay)) + ")"
}

// shiftMonth moves m by n months, backwards when n is negative.
func shiftMonth(m journey.AccountingMonth, n int) journey.AccountingMonth {
	for ; n < 0; n++ {
		m = m.Prev()
	}
	for ; n > 0; n-- {
		m = m.Next()
	}
	return m
}

// loadPolicy falls back to the defaults when the stored policy is unusable,
// so views still render. The error is returned for the status bar.
func loadPolicy(p journey.Policy, err error) (journey.Policy, error) {
	if err != nil {
		return journey.DefaultPolicy(), err
	}
	return p, nil
}
