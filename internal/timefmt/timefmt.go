// Package timefmt converts between minute counts and HH:MM strings and
// formats dates for display.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesToClock renders minutes as zero-padded HH:MM. Hours are not
// wrapped at 24, so monthly totals like 176:40 render as-is.
func MinutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockToMinutes parses an HH:MM string produced by MinutesToClock.
func ClockToMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: missing ':'", s)
	}
	if len(hh) < 2 || (len(hh) > 2 && hh[0] == '0') || !digits(hh) {
		return 0, fmt.Errorf("clock %q: invalid hours", s)
	}
	if len(mm) != 2 || !digits(mm) {
		return 0, fmt.Errorf("clock %q: invalid minutes", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("clock %q: %w", s, err)
	}
	m, _ := strconv.Atoi(mm)
	if m > 59 {
		return 0, fmt.Errorf("clock %q: minutes out of range", s)
	}
	return h*60 + m, nil
}

// ParseTimeOfDay parses a wall-clock HH:MM (00:00–23:59) into minutes since
// midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("time of day %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
