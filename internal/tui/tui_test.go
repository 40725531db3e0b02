package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// addJourney logs a day through the same path the form uses.
func addJourney(t *testing.T, s *store.Store, date, start, end string) *journey.ShiftRecord {
	t.Helper()
	rec, err := journey.Input{Date: date, Start: start, End: end, Meal: "60"}.Record(time.UTC)
	if err != nil {
		t.Fatalf("input %s: %v", date, err)
	}
	r, err := s.CreateJourney(rec)
	if err != nil {
		t.Fatalf("create %s: %v", date, err)
	}
	return r
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	app := NewApp(s, Options{Locale: timefmt.PtBR, ExportDir: t.TempDir()})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), s
}

// ============================================================
// Helpers
// ============================================================

func TestViewNames(t *testing.T) {
	want := []string{"Dashboard", "Journeys", "Calendar", "Reports", "Settings"}
	if len(viewNames) != len(want) {
		t.Fatalf("expected %d views, got %d", len(want), len(viewNames))
	}
	for i, n := range want {
		if viewNames[i] != n {
			t.Fatalf("view %d: expected %q, got %q", i, n, viewNames[i])
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewJourneys != 1 || viewCalendar != 2 || viewReports != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

func TestShiftMonth(t *testing.T) {
	m := journey.AccountingMonth{Year: 2024, Month: time.January}
	if got := shiftMonth(m, -1); got != (journey.AccountingMonth{Year: 2023, Month: time.December}) {
		t.Fatalf("back one: got %v", got)
	}
	if got := shiftMonth(m, 13); got != (journey.AccountingMonth{Year: 2025, Month: time.February}) {
		t.Fatalf("forward 13: got %v", got)
	}
	if got := shiftMonth(m, 0); got != m {
		t.Fatalf("zero: got %v", got)
	}
}

func TestMonthLabel(t *testing.T) {
	m := journey.AccountingMonth{Year: 2024, Month: time.March}
	got := monthLabel(timefmt.PtBR, m, 21)
	want := "março de 2024 (21/03/2024 - 20/04/2024)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLoadPolicyFallback(t *testing.T) {
	p, err := loadPolicy(journey.Policy{}, errors.New("boom"))
	if err == nil {
		t.Fatal("error should be passed through")
	}
	if p.BaseShiftMinutes != journey.DefaultPolicy().BaseShiftMinutes {
		t.Fatal("should fall back to the default policy")
	}

	in := journey.Policy{BaseShiftMinutes: 480, CycleStartDay: 5}
	p, err = loadPolicy(in, nil)
	if err != nil || p.BaseShiftMinutes != 480 {
		t.Fatalf("expected policy unchanged, got %+v, %v", p, err)
	}
}

func TestFormatClock(t *testing.T) {
	if got := formatClock(timefmt.PtBR, nil); got != "--:--" {
		t.Fatalf("nil clock: got %q", got)
	}
	at := time.Date(2024, 3, 1, 8, 5, 0, 0, time.UTC)
	if got := formatClock(timefmt.PtBR, &at); got != "08:05" {
		t.Fatalf("expected 08:05, got %q", got)
	}
}

func TestValidators(t *testing.T) {
	cases := []struct {
		name  string
		fn    func(string) error
		input string
		ok    bool
	}{
		{"date", validDate, "2024-03-01", true},
		{"date bad", validDate, "01/03/2024", false},
		{"clock empty", validClock, "", true},
		{"clock", validClock, "07:30", true},
		{"clock bad", validClock, "25:00", false},
		{"minutes empty", validMinutes, "", true},
		{"minutes", validMinutes, "45", true},
		{"minutes negative", validMinutes, "-5", false},
		{"km comma", validKm, "150,5", true},
		{"km bad", validKm, "abc", false},
		{"base", validBaseShift, "07:20", true},
		{"base zero", validBaseShift, "00:00", false},
		{"cycle", validCycleDay, "21", true},
		{"cycle out of range", validCycleDay, "32", false},
		{"rotation empty", validRotation, "", true},
		{"rotation", validRotation, "12x36", true},
		{"rotation bad", validRotation, "6-2", false},
		{"anchor empty", validOptionalDate, "", true},
	}
	for _, c := range cases {
		err := c.fn(c.input)
		if (err == nil) != c.ok {
			t.Errorf("%s(%q): ok=%v, err=%v", c.name, c.input, c.ok, err)
		}
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardRefresh(t *testing.T) {
	s := newTestStore(t)
	today := journey.Today()
	addJourney(t, s, today.String(), "08:00", "18:00")

	d := newDashboardModel(s, timefmt.PtBR)
	msg := d.refresh()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("expected dashboardDataMsg, got %T", msg)
	}
	d, _ = d.update(data)

	if d.summary.Count != 1 {
		t.Fatalf("expected 1 journey this month, got %d", d.summary.Count)
	}
	if d.summary.WorkedMinutes != 540 {
		t.Fatalf("expected 540 worked minutes, got %d", d.summary.WorkedMinutes)
	}
	if d.today == nil {
		t.Fatal("today's journey should be loaded")
	}
	if len(d.recent) != 1 {
		t.Fatalf("expected 1 recent journey, got %d", len(d.recent))
	}
	if d.month != journey.AccountingMonthOf(today, 1) {
		t.Fatalf("expected current accounting month, got %v", d.month)
	}
}

func TestDashboardMonthNavigation(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, timefmt.PtBR)

	d, cmd := d.update(tea.KeyMsg{Type: tea.KeyLeft})
	if d.offset != -1 || cmd == nil {
		t.Fatal("left should go back a month and reload")
	}
	d, _ = d.update(cmd())

	want := journey.AccountingMonthOf(journey.Today(), 1).Prev()
	if d.month != want {
		t.Fatalf("expected %v, got %v", want, d.month)
	}

	d, _ = d.update(tea.KeyMsg{Type: tea.KeyEsc})
	if d.offset != 0 {
		t.Fatal("esc should return to the current month")
	}
}

func TestDashboardNewOpensForm(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, timefmt.PtBR)

	_, cmd := d.update(runeKey("n"))
	if cmd == nil {
		t.Fatal("n should return a command")
	}
	msg, ok := cmd().(openJourneyFormMsg)
	if !ok {
		t.Fatal("expected openJourneyFormMsg")
	}
	if msg.date != journey.Today() {
		t.Fatalf("expected today, got %v", msg.date)
	}
}

// ============================================================
// Journeys
// ============================================================

func loadAllJourneys(t *testing.T, j journeysModel) journeysModel {
	t.Helper()
	j.scope = scopeAll
	msg := j.refresh()()
	if _, ok := msg.(journeysDataMsg); !ok {
		t.Fatalf("expected journeysDataMsg, got %#v", msg)
	}
	j, _ = j.update(msg)
	return j
}

func TestJourneysListAndSort(t *testing.T) {
	s := newTestStore(t)
	addJourney(t, s, "2024-03-01", "08:00", "12:00")
	addJourney(t, s, "2024-03-02", "08:00", "20:00")
	addJourney(t, s, "2024-03-03", "08:00", "16:00")

	j := loadAllJourneys(t, newJourneysModel(s, timefmt.PtBR))
	if len(j.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(j.rows))
	}
	if j.rows[0].Date.String() != "2024-03-03" {
		t.Fatalf("default order should be newest first, got %s", j.rows[0].Date)
	}

	j, _ = j.update(runeKey("o"))
	if j.sortKey != journey.SortByWorked {
		t.Fatal("o should cycle to sort by hours")
	}
	if j.rows[0].Date.String() != "2024-03-02" {
		t.Fatalf("longest day first, got %s", j.rows[0].Date)
	}

	j, _ = j.update(runeKey("r"))
	if j.desc {
		t.Fatal("r should reverse the order")
	}
	if j.rows[0].Date.String() != "2024-03-01" {
		t.Fatalf("shortest day first, got %s", j.rows[0].Date)
	}
}

func TestJourneysCursorBounds(t *testing.T) {
	s := newTestStore(t)
	addJourney(t, s, "2024-03-01", "08:00", "12:00")
	addJourney(t, s, "2024-03-02", "08:00", "12:00")

	j := loadAllJourneys(t, newJourneysModel(s, timefmt.PtBR))
	j, _ = j.update(tea.KeyMsg{Type: tea.KeyUp})
	if j.cursor != 0 {
		t.Fatal("cursor should not go above 0")
	}
	j, _ = j.update(tea.KeyMsg{Type: tea.KeyDown})
	j, _ = j.update(tea.KeyMsg{Type: tea.KeyDown})
	if j.cursor != 1 {
		t.Fatalf("cursor should stop at last row, got %d", j.cursor)
	}
}

func TestJourneysSearch(t *testing.T) {
	s := newTestStore(t)
	addJourney(t, s, "2024-03-01", "08:00", "12:00")
	r := addJourney(t, s, "2024-03-02", "08:00", "12:00")
	r.ExternalRef = "OS-42"
	if _, err := s.UpdateJourney(*r); err != nil {
		t.Fatal(err)
	}

	j := loadAllJourneys(t, newJourneysModel(s, timefmt.PtBR))
	j, _ = j.update(runeKey("/"))
	if !j.searching || !j.capturing() {
		t.Fatal("/ should start searching")
	}
	j, _ = j.update(runeKey("os-4"))
	if len(j.rows) != 1 || j.rows[0].ExternalRef != "OS-42" {
		t.Fatalf("expected the OS-42 journey only, got %d rows", len(j.rows))
	}

	j, _ = j.update(tea.KeyMsg{Type: tea.KeyEsc})
	if j.searching || len(j.rows) != 2 {
		t.Fatal("esc should clear the search")
	}
}

func TestJourneysDeleteConfirm(t *testing.T) {
	s := newTestStore(t)
	addJourney(t, s, "2024-03-01", "08:00", "12:00")
	j := loadAllJourneys(t, newJourneysModel(s, timefmt.PtBR))

	j, _ = j.update(runeKey("d"))
	if !j.confirmDelete {
		t.Fatal("d should ask for confirmation")
	}
	j, cmd := j.update(runeKey("n"))
	if j.confirmDelete || cmd != nil {
		t.Fatal("any key but y should cancel")
	}

	j, _ = j.update(runeKey("d"))
	_, cmd = j.update(runeKey("y"))
	if cmd == nil {
		t.Fatal("y should delete")
	}
	if _, ok := cmd().(journeysChangedMsg); !ok {
		t.Fatal("expected journeysChangedMsg")
	}
	left, _ := s.ListJourneys(store.JourneyFilter{})
	if len(left) != 0 {
		t.Fatalf("expected no journeys, got %d", len(left))
	}
}

func TestJourneysShowFormEditsExistingDate(t *testing.T) {
	s := newTestStore(t)
	r := addJourney(t, s, "2024-03-01", "08:00", "12:00")

	j := newJourneysModel(s, timefmt.PtBR)
	d, _ := journey.ParseDate("2024-03-01")
	j, _ = j.showForm(nil, d)

	if !j.formActive || !j.capturing() {
		t.Fatal("form should be active")
	}
	if j.editingID != r.ID {
		t.Fatal("opening a new form on a logged day should edit that journey")
	}
	if j.input.Start != "08:00" {
		t.Fatalf("expected start 08:00, got %q", j.input.Start)
	}

	j, _ = j.update(tea.KeyMsg{Type: tea.KeyEsc})
	if j.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestJourneysSave(t *testing.T) {
	s := newTestStore(t)
	j := newJourneysModel(s, timefmt.PtBR)
	d, _ := journey.ParseDate("2024-03-05")
	j, _ = j.showForm(nil, d)
	if j.editingID != "" {
		t.Fatal("new journey should not have an id")
	}
	j.input.Start = "07:00"
	j.input.End = "17:00"

	msg := j.save()()
	if _, ok := msg.(journeysChangedMsg); !ok {
		t.Fatalf("expected journeysChangedMsg, got %#v", msg)
	}
	got, err := s.GetJourneyByDate(d)
	if err != nil || got == nil {
		t.Fatalf("journey not stored: %v", err)
	}
	if got.MealMinutes != journey.DefaultMealMinutes {
		t.Fatalf("expected default meal, got %d", got.MealMinutes)
	}

	// Saving a second new journey on the same date is refused.
	j.editingID = ""
	msg = j.save()()
	st, ok := msg.(statusMsg)
	if !ok || !st.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
}

func TestJourneysSaveInvalidInput(t *testing.T) {
	s := newTestStore(t)
	j := newJourneysModel(s, timefmt.PtBR)
	j.input = &journey.Input{Date: "2024-03-05", Start: "18:00", End: "08:00"}

	st, ok := j.save()().(statusMsg)
	if !ok || !st.isError {
		t.Fatal("end before start should be rejected")
	}
}

// ============================================================
// Calendar
// ============================================================

func TestCalendarRefresh(t *testing.T) {
	s := newTestStore(t)
	anchor, _ := journey.ParseDate("2024-03-01")
	p := journey.DefaultPolicy()
	p.RotationAnchor = &anchor
	if err := s.SavePolicy(p); err != nil {
		t.Fatal(err)
	}
	addJourney(t, s, "2024-03-02", "08:00", "12:00")

	c := newCalendarModel(s, timefmt.PtBR)
	c.year, c.month = 2024, time.March
	c, _ = c.update(c.refresh()())

	if len(c.weeks) == 0 {
		t.Fatal("expected weeks")
	}
	var found bool
	for _, week := range c.weeks {
		for _, day := range week {
			if day == nil || day.Date != anchor.AddDays(1) {
				continue
			}
			found = true
			if !day.Logged || day.Status != journey.StatusWork {
				t.Fatalf("2024-03-02: expected logged work day, got %+v", day)
			}
		}
	}
	if !found {
		t.Fatal("2024-03-02 missing from grid")
	}

	out := c.view()
	if !strings.Contains(out, "março de 2024") {
		t.Fatal("view should show the month name")
	}
}

func TestCalendarDropsStaleData(t *testing.T) {
	s := newTestStore(t)
	c := newCalendarModel(s, timefmt.PtBR)
	c.year, c.month = 2024, time.March
	stale := c.refresh()

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyRight})
	if c.month != time.April {
		t.Fatalf("expected April, got %v", c.month)
	}
	c, _ = c.update(stale())
	if c.weeks != nil {
		t.Fatal("reply for March should be ignored while showing April")
	}
}

func TestAddMonths(t *testing.T) {
	y, m := addMonths(2024, time.December, 1)
	if y != 2025 || m != time.January {
		t.Fatalf("expected 2025-01, got %d-%d", y, m)
	}
	y, m = addMonths(2024, time.January, -1)
	if y != 2023 || m != time.December {
		t.Fatalf("expected 2023-12, got %d-%d", y, m)
	}
}

// ============================================================
// Reports
// ============================================================

func TestReportsWeekly(t *testing.T) {
	s := newTestStore(t)
	addJourney(t, s, journey.Today().String(), "08:00", "18:00")

	r := newReportsModel(s, timefmt.PtBR)
	r.setSize(120, 40)
	r, _ = r.update(r.refresh()())

	if len(r.days) != 7 {
		t.Fatalf("weekly report should have 7 days, got %d", len(r.days))
	}
	if r.summary.Count != 1 || r.summary.Overtime50Minutes != 100 {
		t.Fatalf("unexpected summary %+v", r.summary)
	}
	if r.view() == "" {
		t.Fatal("view should render")
	}
}

func TestReportsModeToggle(t *testing.T) {
	s := newTestStore(t)
	r := newReportsModel(s, timefmt.PtBR)
	r.offset = 3

	r, cmd := r.update(runeKey("f"))
	if r.mode != reportMonthly || r.offset != 0 || cmd == nil {
		t.Fatal("f should switch to monthly and reset the offset")
	}
	r, _ = r.update(cmd())
	m := journey.AccountingMonthOf(journey.Today(), 1)
	if r.from != m.Start(1) || r.to != m.End(1) {
		t.Fatalf("expected %s..%s, got %s..%s", m.Start(1), m.End(1), r.from, r.to)
	}

	r, _ = r.update(tea.KeyMsg{Type: tea.KeyRight})
	if r.offset != 0 {
		t.Fatal("cannot move past the current period")
	}
}

// ============================================================
// Settings
// ============================================================

func TestPolicyFormPolicy(t *testing.T) {
	f := policyForm{base: "08:00", cycle: "21", rotation: "12x36", anchor: "2024-01-01", weekStart: "monday", distance: true}
	p, err := f.policy()
	if err != nil {
		t.Fatal(err)
	}
	if p.BaseShiftMinutes != 480 || p.CycleStartDay != 21 || p.WeekStart != time.Monday || !p.DistanceTracking {
		t.Fatalf("unexpected policy %+v", p)
	}
	if p.Rotation.WorkDays != 12 || p.Rotation.OffDays != 36 || p.RotationAnchor == nil {
		t.Fatalf("unexpected rotation %+v", p.Rotation)
	}

	f.rotation = ""
	p, err = f.policy()
	if err != nil || !p.Rotation.IsZero() {
		t.Fatalf("empty rotation should be allowed, got %+v, %v", p.Rotation, err)
	}

	f.cycle = "40"
	if _, err := f.policy(); !errors.Is(err, journey.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestSettingsOnboardingSave(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s, timefmt.PtBR)

	m, _ = m.startOnboarding()
	if !m.formActive || !m.onboarding {
		t.Fatal("onboarding should open the form")
	}
	if m.values.base != "07:20" || m.values.rotation != "6x2" {
		t.Fatalf("form should be prefilled with defaults, got %+v", *m.values)
	}

	m.values.cycle = "21"
	msg := m.save(true)()
	if _, ok := msg.(policyChangedMsg); !ok {
		t.Fatalf("expected policyChangedMsg, got %#v", msg)
	}
	done, _ := s.IsOnboarded()
	if !done {
		t.Fatal("onboarding should be marked complete")
	}
	p, _ := s.GetPolicy()
	if p.CycleStartDay != 21 {
		t.Fatalf("expected cycle day 21, got %d", p.CycleStartDay)
	}
}

func TestSettingsCancelOnboarding(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s, timefmt.PtBR)
	m, _ = m.startOnboarding()

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive || m.onboarding {
		t.Fatal("esc should close onboarding")
	}
	if cmd == nil {
		t.Fatal("skipping setup should report a status")
	}
	done, _ := s.IsOnboarded()
	if done {
		t.Fatal("skipping should not mark onboarding complete")
	}
}

func TestSettingsView(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s, timefmt.PtBR)
	m.setSize(120, 40)
	m, _ = m.update(m.refresh()())

	out := m.view()
	for _, want := range []string{"Base shift", "07:20", "6 on / 2 off", "Setup not finished"} {
		if !strings.Contains(out, want) {
			t.Fatalf("settings view missing %q", want)
		}
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, Options{})

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp || app.exportPicking {
		t.Fatal("help and export picker should be hidden by default")
	}
	if app.opts.Locale.Tag != timefmt.PtBR.Tag {
		t.Fatal("empty locale should fall back to pt-BR")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)
	for i := range viewNames {
		app.activeView = viewState(i)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app, _ := newTestApp(t)

	m, cmd := app.Update(runeKey("3"))
	app = m.(App)
	if app.activeView != viewCalendar || cmd == nil {
		t.Fatal("3 should switch to the calendar and load it")
	}

	app.activeView = viewSettings
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(App).activeView != viewDashboard {
		t.Fatal("tab should wrap around to the dashboard")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)
	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := NewApp(newTestStore(t), Options{})
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t)
	m, _ := app.Update(statusMsg{text: "test status"})
	if !strings.Contains(m.(App).renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppOnboarding(t *testing.T) {
	app, _ := newTestApp(t)

	msg := app.checkOnboarding()()
	ob, ok := msg.(onboardingMsg)
	if !ok || !ob.pending {
		t.Fatalf("fresh store should need onboarding, got %#v", msg)
	}

	m, _ := app.Update(ob)
	app = m.(App)
	if app.activeView != viewSettings || !app.isFormActive() {
		t.Fatal("onboarding should open the settings form")
	}

	// Global keys are captured by the form.
	m, _ = app.Update(runeKey("1"))
	if m.(App).activeView != viewSettings {
		t.Fatal("tab keys should not leave an open form")
	}
}

func TestAppOpenJourneyForm(t *testing.T) {
	app, _ := newTestApp(t)
	m, _ := app.Update(openJourneyFormMsg{date: journey.Today()})
	app = m.(App)
	if app.activeView != viewJourneys || !app.journeys.formActive {
		t.Fatal("expected the journey form to open")
	}
}

func TestAppJourneysChangedSetsStatus(t *testing.T) {
	app, _ := newTestApp(t)
	m, cmd := app.Update(journeysChangedMsg{status: "Journey saved"})
	if m.(App).status != "Journey saved" {
		t.Fatal("status should be shown")
	}
	if cmd == nil {
		t.Fatal("views should reload")
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _ := newTestApp(t)

	m, _ := app.Update(runeKey("x"))
	app = m.(App)
	if !app.exportPicking {
		t.Fatal("x should open the export picker")
	}
	for range 5 {
		m, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
		app = m.(App)
	}
	if app.exportCursor != len(exportFormats)-1 {
		t.Fatalf("cursor should stop at last format, got %d", app.exportCursor)
	}
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(App).exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppExport(t *testing.T) {
	app, s := newTestApp(t)
	addJourney(t, s, journey.Today().String(), "08:00", "18:00")

	for i, ext := range []string{".csv", ".json", ".txt"} {
		msg := app.doExport(i)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("%s: expected exportDoneMsg, got %#v", ext, msg)
		}
		if filepath.Ext(done.path) != ext {
			t.Fatalf("expected %s file, got %s", ext, done.path)
		}
		info, err := os.Stat(done.path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s: export missing or empty: %v", ext, err)
		}
	}
}

// ============================================================
// Key bindings and styles
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

func TestStylesRender(t *testing.T) {
	styles := map[string]func() string{
		"activeTab": func() string { return activeTabStyle.Render("test") },
		"panel":     func() string { return panelStyle.Render("test") },
		"figure":    func() string { return figureStyle.Render("test") },
		"overtime":  func() string { return overtimeStyle.Render("test") },
		"holiday":   func() string { return holidayStyle.Render("test") },
		"workDay":   func() string { return workDayStyle.Render("test") },
		"offDay":    func() string { return offDayStyle.Render("test") },
		"loggedDay": func() string { return loggedDayStyle.Render("test") },
		"today":     func() string { return todayStyle.Render("test") },
		"error":     func() string { return errorStyle.Render("test") },
	}
	for name, fn := range styles {
		if fn() == "" {
			t.Fatalf("style %q rendered empty", name)
		}
	}
}
