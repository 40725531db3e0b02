package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

type journeyScope int

const (
	scopeMonth journeyScope = iota
	scopeAll
)

var sortNames = map[journey.SortKey]string{
	journey.SortByDate:     "date",
	journey.SortByWorked:   "hours",
	journey.SortByOvertime: "overtime",
}

type journeysModel struct {
	store  *store.Store
	locale timefmt.Locale
	width  int
	height int

	policy  journey.Policy
	scope   journeyScope
	offset  int
	month   journey.AccountingMonth
	records []journey.ShiftRecord
	rows    []journey.ShiftRecord
	cursor  int

	sortKey journey.SortKey
	desc    bool

	search    textinput.Model
	searching bool

	confirmDelete bool

	formActive bool
	form       *huh.Form
	input      *journey.Input
	editingID  string
}

func newJourneysModel(s *store.Store, l timefmt.Locale) journeysModel {
	ti := textinput.New()
	ti.Placeholder = "reference or notes"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return journeysModel{
		store:  s,
		locale: l,
		policy: journey.DefaultPolicy(),
		desc:   true,
		search: ti,
	}
}

func (j *journeysModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

// capturing reports whether keys should bypass the global bindings.
func (j journeysModel) capturing() bool {
	return j.formActive || j.searching || j.confirmDelete
}

type journeysDataMsg struct {
	policy  journey.Policy
	month   journey.AccountingMonth
	records []journey.ShiftRecord
}

func (j journeysModel) refresh() tea.Cmd {
	scope, offset := j.scope, j.offset
	return func() tea.Msg {
		p, _ := loadPolicy(j.store.GetPolicy())

		var f store.JourneyFilter
		var month journey.AccountingMonth
		if scope == scopeMonth {
			month = shiftMonth(journey.AccountingMonthOf(journey.Today(), p.CycleStartDay), offset)
			from, to := month.Start(p.CycleStartDay), month.End(p.CycleStartDay)
			f.From, f.To = &from, &to
		}
		records, err := j.store.ListJourneys(f)
		if err != nil {
			return errStatus("Journeys", err)
		}
		return journeysDataMsg{policy: p, month: month, records: records}
	}
}

// applyView rebuilds the visible rows from the loaded records.
func (j *journeysModel) applyView() {
	j.rows = journey.Apply(j.records, journey.Matching(j.search.Value()))
	journey.Sort(j.rows, j.policy, j.sortKey, j.desc)
	if j.cursor >= len(j.rows) {
		j.cursor = max(len(j.rows)-1, 0)
	}
}

func (j journeysModel) selected() *journey.ShiftRecord {
	if j.cursor < 0 || j.cursor >= len(j.rows) {
		return nil
	}
	r := j.rows[j.cursor]
	return &r
}

func (j journeysModel) update(msg tea.Msg) (journeysModel, tea.Cmd) {
	if data, ok := msg.(journeysDataMsg); ok {
		j.policy = data.policy
		j.month = data.month
		j.records = data.records
		j.applyView()
		return j, nil
	}
	if j.formActive && j.form != nil {
		return j.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if j.searching {
			return j.updateSearch(msg)
		}
		if j.confirmDelete {
			j.confirmDelete = false
			if msg.String() == "y" {
				return j, j.deleteSelected()
			}
			return j, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < len(j.rows)-1 {
				j.cursor++
			}
		case key.Matches(msg, keys.New):
			return j.showForm(nil, journey.Today())
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if r := j.selected(); r != nil {
				return j.showForm(r, r.Date)
			}
		case key.Matches(msg, keys.Delete):
			if j.selected() != nil {
				j.confirmDelete = true
			}
		case key.Matches(msg, keys.Filter):
			if j.scope == scopeMonth {
				j.scope = scopeAll
			} else {
				j.scope = scopeMonth
			}
			j.cursor = 0
			return j, j.refresh()
		case key.Matches(msg, keys.Sort):
			j.sortKey = (j.sortKey + 1) % journey.SortKey(len(sortNames))
			j.applyView()
		case key.Matches(msg, keys.Order):
			j.desc = !j.desc
			j.applyView()
		case key.Matches(msg, keys.Search):
			j.searching = true
			return j, j.search.Focus()
		case key.Matches(msg, keys.Left):
			if j.scope == scopeMonth {
				j.offset--
				return j, j.refresh()
			}
		case key.Matches(msg, keys.Right):
			if j.scope == scopeMonth {
				j.offset++
				return j, j.refresh()
			}
		}
	}
	return j, nil
}

func (j journeysModel) updateSearch(msg tea.KeyMsg) (journeysModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		j.searching = false
		j.search.Blur()
		return j, nil
	case "esc":
		j.searching = false
		j.search.Blur()
		j.search.SetValue("")
		j.applyView()
		return j, nil
	}
	var cmd tea.Cmd
	j.search, cmd = j.search.Update(msg)
	j.applyView()
	return j, cmd
}

func (j journeysModel) deleteSelected() tea.Cmd {
	r := j.selected()
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		if err := j.store.DeleteJourney(r.ID); err != nil {
			return errStatus("Delete", err)
		}
		return journeysChangedMsg{status: "Journey deleted"}
	}
}

// showForm opens the journey form. A nil existing record on a date that
// already has one edits that record instead.
func (j journeysModel) showForm(existing *journey.ShiftRecord, d journey.Date) (journeysModel, tea.Cmd) {
	if p, err := j.store.GetPolicy(); err == nil {
		j.policy = p
	}
	if existing == nil {
		if r, err := j.store.GetJourneyByDate(d); err == nil && r != nil {
			existing = r
		}
	}

	in := journey.NewInput(d)
	j.editingID = ""
	if existing != nil {
		in = journey.InputOf(*existing)
		j.editingID = existing.ID
	}
	j.input = &in

	times := huh.NewGroup(
		huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&j.input.Date).Validate(validDate),
		huh.NewInput().Title("Start").Placeholder("HH:MM").Value(&j.input.Start).Validate(validClock),
		huh.NewInput().Title("End").Placeholder("HH:MM").Value(&j.input.End).Validate(validClock),
		huh.NewInput().Title("Meal break (min)").Value(&j.input.Meal).Validate(validMinutes),
		huh.NewInput().Title("Rest (min)").Value(&j.input.Rest).Validate(validMinutes),
		huh.NewConfirm().Title("Holiday?").Value(&j.input.Holiday),
	).Title("Journey")

	var details []huh.Field
	if j.policy.DistanceTracking {
		details = append(details,
			huh.NewInput().Title("Odometer start (km)").Value(&j.input.KmStart).Validate(validKm),
			huh.NewInput().Title("Odometer end (km)").Value(&j.input.KmEnd).Validate(validKm),
		)
	}
	details = append(details,
		huh.NewInput().Title("Reference").Value(&j.input.ExternalRef).CharLimit(64),
		huh.NewText().Title("Notes").Value(&j.input.Notes).CharLimit(2000),
	)

	j.form = huh.NewForm(times, huh.NewGroup(details...).Title("Details")).
		WithShowHelp(true).WithShowErrors(true)
	j.formActive = true
	return j, j.form.Init()
}

func (j journeysModel) updateForm(msg tea.Msg) (journeysModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			j.formActive = false
			j.form = nil
			return j, nil
		}
	}

	form, cmd := j.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		j.form = f
	}

	if j.form.State == huh.StateCompleted {
		j.formActive = false
		j.form = nil
		return j, j.save()
	}
	return j, cmd
}

func (j journeysModel) save() tea.Cmd {
	in, id := *j.input, j.editingID
	return func() tea.Msg {
		rec, err := in.Record(time.Local)
		if err != nil {
			return errStatus("Journey", err)
		}
		rec.ID = id
		if id == "" {
			_, err = j.store.CreateJourney(rec)
		} else {
			_, err = j.store.UpdateJourney(rec)
		}
		if errors.Is(err, journey.ErrDuplicateDate) {
			return statusMsg{text: "A journey already exists on " + formatDate(j.locale, rec.Date), isError: true}
		}
		if err != nil {
			return errStatus("Journey", err)
		}
		return journeysChangedMsg{status: "Journey saved for " + formatDate(j.locale, rec.Date)}
	}
}

func validDate(s string) error {
	_, err := journey.ParseDate(strings.TrimSpace(s))
	return err
}

func validClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := timefmt.ParseTimeOfDay(strings.TrimSpace(s))
	return err
}

func validMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter whole minutes")
	}
	return nil
}

func validKm(s string) error {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func (j journeysModel) scopeLabel() string {
	if j.scope == scopeAll {
		return "All journeys"
	}
	if j.month == (journey.AccountingMonth{}) {
		return ""
	}
	return monthLabel(j.locale, j.month, j.policy.CycleStartDay)
}

func (j journeysModel) view() string {
	w := j.width - 4
	title := titleStyle.Render("Journeys")

	if j.formActive && j.form != nil {
		heading := "New journey"
		if j.editingID != "" {
			heading = "Edit journey"
		}
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title+"  "+mutedStyle.Render(heading), "", j.form.View()),
		)
	}

	order := "↓"
	if !j.desc {
		order = "↑"
	}
	header := fmt.Sprintf("%s  %s  %s", title, mutedStyle.Render(j.scopeLabel()),
		subtitleStyle.Render(fmt.Sprintf("sort: %s %s", sortNames[j.sortKey], order)))

	rows := []string{header}
	if j.searching || j.search.Value() != "" {
		rows = append(rows, j.search.View())
	}
	rows = append(rows, "")

	if len(j.rows) == 0 {
		rows = append(rows, mutedStyle.Render("  No journeys. Press n to add one."))
	} else {
		rows = append(rows, mutedStyle.Render(j.columns("Date", "Start", "End", "Meal", "Worked", "OT 50%", "OT 100%", "KM", "Ref")))
		rows = append(rows, j.visibleRows()...)
		sum := journey.Summarize(j.rows, j.policy, nil)
		rows = append(rows, "", fmt.Sprintf("  %d journeys  worked %s  overtime %s / %s",
			sum.Count, figureStyle.Render(hm(sum.WorkedMinutes)),
			overtimeStyle.Render(hm(sum.Overtime50Minutes)), holidayStyle.Render(hm(sum.Overtime100Minutes))))
	}

	rows = append(rows, "")
	if j.confirmDelete {
		if r := j.selected(); r != nil {
			rows = append(rows, warningStyle.Render(fmt.Sprintf("  Delete journey of %s? (y/n)", formatDate(j.locale, r.Date))))
		}
	} else {
		rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  f: month/all  o: sort  r: reverse  /: search  ←/→: month"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (j journeysModel) columns(date, start, end, meal, worked, ot50, ot100, km, ref string) string {
	line := fmt.Sprintf("  %-12s %-6s %-6s %5s %7s %7s %7s", date, start, end, meal, worked, ot50, ot100)
	if j.policy.DistanceTracking {
		line += fmt.Sprintf(" %8s", km)
	}
	return line + "  " + ref
}

// visibleRows renders the rows that fit, keeping the cursor in view.
func (j journeysModel) visibleRows() []string {
	limit := max(j.height-14, 5)
	start := 0
	if j.cursor >= limit {
		start = j.cursor - limit + 1
	}
	end := min(start+limit, len(j.rows))

	var out []string
	for i := start; i < end; i++ {
		r := j.rows[i]
		c := journey.Calculate(r, j.policy)
		date := formatDate(j.locale, r.Date)
		if r.IsHoliday {
			date += "*"
		}
		km := ""
		if c.Distance != nil {
			km = c.Distance.StringFixed(1)
		}
		line := j.columns(date, formatClock(j.locale, r.StartAt), formatClock(j.locale, r.EndAt),
			strconv.Itoa(r.MealMinutes), hm(c.WorkedMinutes), hm(c.Overtime50Minutes), hm(c.Overtime100Minutes),
			km, r.ExternalRef)
		if i == j.cursor {
			out = append(out, selectedItemStyle.Render(">"+line[1:]))
		} else {
			out = append(out, normalItemStyle.Render(line))
		}
	}
	return out
}
