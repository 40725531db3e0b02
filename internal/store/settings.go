package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/logger"
)

type Setting struct {
	Key   string
	Value string
}

const (
	keyBaseShift      = "base_shift_minutes"
	keyDistance       = "distance_tracking"
	keyCycleStartDay  = "cycle_start_day"
	keyRotation       = "rotation_pattern"
	keyRotationAnchor = "rotation_anchor"
	keyWeekStart      = "week_start"
	keyOnboarded      = "onboarded"
	keyPolicyUpdated  = "policy_updated_at"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	return setSetting(s.db, key, value)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func setSetting(db execer, key, value string) error {
	_, err := db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetPolicy assembles the calculation policy from the settings table. A
// stored rotation that no longer parses is reported as
// journey.ErrInvalidConfiguration.
func (s *Store) GetPolicy() (journey.Policy, error) {
	all, err := s.GetAllSettings()
	if err != nil {
		return journey.Policy{}, err
	}
	vals := make(map[string]string, len(all))
	for _, st := range all {
		vals[st.Key] = st.Value
	}

	p := journey.DefaultPolicy()
	if v, ok := vals[keyBaseShift]; ok {
		if p.BaseShiftMinutes, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("%w: %s=%q", journey.ErrInvalidConfiguration, keyBaseShift, v)
		}
	}
	p.DistanceTracking = vals[keyDistance] == "true"
	if v, ok := vals[keyCycleStartDay]; ok {
		if p.CycleStartDay, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("%w: %s=%q", journey.ErrInvalidConfiguration, keyCycleStartDay, v)
		}
	}
	if v, ok := vals[keyRotation]; ok {
		// An empty pattern means no rotation is configured.
		p.Rotation = journey.Rotation{}
		if v != "" {
			if p.Rotation, err = journey.ParseRotation(v); err != nil {
				return p, err
			}
		}
	}
	if v := vals[keyRotationAnchor]; v != "" {
		d, err := journey.ParseDate(v)
		if err != nil {
			return p, fmt.Errorf("%w: %s=%q", journey.ErrInvalidConfiguration, keyRotationAnchor, v)
		}
		p.RotationAnchor = &d
	}
	if v, ok := vals[keyWeekStart]; ok {
		wd, err := ParseWeekday(v)
		if err != nil {
			return p, err
		}
		p.WeekStart = wd
	}
	if v := vals[keyPolicyUpdated]; v != "" {
		p.UpdatedAt, _ = time.Parse(time.RFC3339, v)
	}
	return p, nil
}

// SavePolicy validates p and writes every field in one transaction.
func (s *Store) SavePolicy(p journey.Policy) error {
	if err := journey.ValidatePolicy(p); err != nil {
		return err
	}

	anchor := ""
	if p.RotationAnchor != nil {
		anchor = p.RotationAnchor.String()
	}
	values := []Setting{
		{keyBaseShift, strconv.Itoa(p.BaseShiftMinutes)},
		{keyDistance, strconv.FormatBool(p.DistanceTracking)},
		{keyCycleStartDay, strconv.Itoa(p.CycleStartDay)},
		{keyRotation, p.Rotation.String()},
		{keyRotationAnchor, anchor},
		{keyWeekStart, strings.ToLower(p.WeekStart.String())},
		{keyPolicyUpdated, time.Now().UTC().Format(time.RFC3339)},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, v := range values {
		if err := setSetting(tx, v.Key, v.Value); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit policy: %w", err)
	}
	logger.Info("policy saved", "base", p.BaseShiftMinutes, "cycle_start", p.CycleStartDay, "rotation", p.Rotation.String())
	return nil
}

func (s *Store) IsOnboarded() (bool, error) {
	v, err := s.GetSetting(keyOnboarded)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// CompleteOnboarding saves the first policy and marks setup done.
func (s *Store) CompleteOnboarding(p journey.Policy) error {
	if err := s.SavePolicy(p); err != nil {
		return err
	}
	return s.SetSetting(keyOnboarded, "true")
}

// ParseWeekday accepts English weekday names, case-insensitive.
func ParseWeekday(v string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(v, wd.String()) {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: unknown weekday %q", journey.ErrInvalidConfiguration, v)
}
