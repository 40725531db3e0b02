package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/store"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

// policyForm holds the form values as text. Pointers survive value copies
// of the model.
type policyForm struct {
	base      string
	cycle     string
	rotation  string
	anchor    string
	weekStart string
	distance  bool
}

type settingsModel struct {
	store  *store.Store
	locale timefmt.Locale
	width  int
	height int

	policy    journey.Policy
	loadErr   error
	onboarded bool

	formActive bool
	onboarding bool
	form       *huh.Form
	values     *policyForm
}

func newSettingsModel(s *store.Store, l timefmt.Locale) settingsModel {
	return settingsModel{
		store:  s,
		locale: l,
		policy: journey.DefaultPolicy(),
		values: &policyForm{},
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	policy    journey.Policy
	err       error
	onboarded bool
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		p, err := loadPolicy(s.store.GetPolicy())
		done, _ := s.store.IsOnboarded()
		return settingsDataMsg{policy: p, err: err, onboarded: done}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if data, ok := msg.(settingsDataMsg); ok {
		s.policy = data.policy
		s.loadErr = data.err
		s.onboarded = data.onboarded
		return s, nil
	}
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.Edit) {
			return s.showForm()
		}
	}
	return s, nil
}

// startOnboarding opens the policy form for first-run setup.
func (s settingsModel) startOnboarding() (settingsModel, tea.Cmd) {
	s.onboarding = true
	return s.showForm()
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	p, err := loadPolicy(s.store.GetPolicy())
	s.policy, s.loadErr = p, err

	anchor := ""
	if p.RotationAnchor != nil {
		anchor = p.RotationAnchor.String()
	}
	*s.values = policyForm{
		base:      timefmt.MinutesToClock(p.BaseShiftMinutes),
		cycle:     strconv.Itoa(p.CycleStartDay),
		rotation:  p.Rotation.String(),
		anchor:    anchor,
		weekStart: strings.ToLower(p.WeekStart.String()),
		distance:  p.DistanceTracking,
	}

	var weekdays []huh.Option[string]
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		weekdays = append(weekdays, huh.NewOption(wd.String(), strings.ToLower(wd.String())))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Base shift (HH:MM)").
				Description("Time worked before overtime starts").
				Value(&s.values.base).Validate(validBaseShift),
			huh.NewInput().Title("Accounting month starts on day").
				Value(&s.values.cycle).Validate(validCycleDay),
			huh.NewSelect[string]().Title("Week starts on").
				Options(weekdays...).Value(&s.values.weekStart),
		).Title("Hours"),
		huh.NewGroup(
			huh.NewInput().Title("Rotation (work x off)").
				Placeholder("6x2").Description("Leave empty for no rotation").
				Value(&s.values.rotation).Validate(validRotation),
			huh.NewInput().Title("First work day of a cycle").
				Placeholder("YYYY-MM-DD").
				Value(&s.values.anchor).Validate(validOptionalDate),
			huh.NewConfirm().Title("Track odometer distance?").
				Value(&s.values.distance),
		).Title("Rotation"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			if s.onboarding {
				s.onboarding = false
				return s, func() tea.Msg {
					return statusMsg{text: "Setup skipped, using defaults. Press 5 then enter to configure."}
				}
			}
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		onboarding := s.onboarding
		s.onboarding = false
		return s, s.save(onboarding)
	}
	return s, cmd
}

func (s settingsModel) save(onboarding bool) tea.Cmd {
	values := *s.values
	return func() tea.Msg {
		p, err := values.policy()
		if err != nil {
			return errStatus("Settings", err)
		}
		if onboarding {
			err = s.store.CompleteOnboarding(p)
		} else {
			err = s.store.SavePolicy(p)
		}
		if err != nil {
			return errStatus("Settings", err)
		}
		return policyChangedMsg{status: "Settings saved"}
	}
}

// policy converts the form text into a Policy.
func (f policyForm) policy() (journey.Policy, error) {
	p := journey.DefaultPolicy()

	base, err := timefmt.ClockToMinutes(strings.TrimSpace(f.base))
	if err != nil {
		return p, fmt.Errorf("%w: base shift: %v", journey.ErrInvalidConfiguration, err)
	}
	p.BaseShiftMinutes = base

	if p.CycleStartDay, err = strconv.Atoi(strings.TrimSpace(f.cycle)); err != nil {
		return p, fmt.Errorf("%w: cycle day %q", journey.ErrInvalidConfiguration, f.cycle)
	}

	p.Rotation = journey.Rotation{}
	if v := strings.TrimSpace(f.rotation); v != "" {
		if p.Rotation, err = journey.ParseRotation(v); err != nil {
			return p, err
		}
	}

	if v := strings.TrimSpace(f.anchor); v != "" {
		d, err := journey.ParseDate(v)
		if err != nil {
			return p, fmt.Errorf("%w: anchor: %v", journey.ErrInvalidConfiguration, err)
		}
		p.RotationAnchor = &d
	}

	if p.WeekStart, err = store.ParseWeekday(f.weekStart); err != nil {
		return p, err
	}
	p.DistanceTracking = f.distance
	return p, journey.ValidatePolicy(p)
}

func validBaseShift(s string) error {
	m, err := timefmt.ClockToMinutes(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("use HH:MM, e.g. 07:20")
	}
	if m < 1 || m > 24*60 {
		return fmt.Errorf("must be between 00:01 and 24:00")
	}
	return nil
}

func validCycleDay(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 31 {
		return fmt.Errorf("enter a day between 1 and 31")
	}
	return nil
}

func validRotation(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := journey.ParseRotation(strings.TrimSpace(s))
	return err
}

func validOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validDate(s)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.onboarding {
			title = titleStyle.Render("Welcome to shiftlog") + "\n" +
				mutedStyle.Render("Set up how your hours are counted. You can change this later.")
		}
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	p := s.policy
	rotation := "none"
	if !p.Rotation.IsZero() {
		rotation = fmt.Sprintf("%d on / %d off", p.Rotation.WorkDays, p.Rotation.OffDays)
	}
	anchor := "not set"
	if p.RotationAnchor != nil {
		anchor = formatDate(s.locale, *p.RotationAnchor)
	}
	distance := "off"
	if p.DistanceTracking {
		distance = "on"
	}

	fields := [][2]string{
		{"Base shift", timefmt.MinutesToClock(p.BaseShiftMinutes)},
		{"Accounting month", fmt.Sprintf("starts on day %d", p.CycleStartDay)},
		{"Week starts on", p.WeekStart.String()},
		{"Rotation", rotation},
		{"Rotation anchor", anchor},
		{"Distance tracking", distance},
		{"Locale", s.locale.Tag},
	}
	if !p.UpdatedAt.IsZero() {
		fields = append(fields, [2]string{"Last changed", s.locale.FormatDateTime(p.UpdatedAt.Local())})
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, f := range fields {
		label := lipgloss.NewStyle().Width(24).Render(f[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(f[1])))
	}
	if s.loadErr != nil {
		rows = append(rows, "", errorStyle.Render("  Stored settings are invalid: "+s.loadErr.Error()))
	}
	if !s.onboarded {
		rows = append(rows, "", warningStyle.Render("  Setup not finished. Defaults are in use."))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
