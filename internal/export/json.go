package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sadopc/shiftlog/internal/journey"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Policy     jsonPolicy  `json:"policy"`
	Totals     jsonTotals  `json:"totals"`
	Journeys   []jsonEntry `json:"journeys"`
}

type jsonPolicy struct {
	BaseShiftMinutes int    `json:"base_shift_minutes"`
	CycleStartDay    int    `json:"cycle_start_day"`
	DistanceTracking bool   `json:"distance_tracking"`
	Rotation         string `json:"rotation,omitempty"`
	RotationAnchor   string `json:"rotation_anchor,omitempty"`
}

type jsonTotals struct {
	WorkedMinutes      int              `json:"worked_minutes"`
	Overtime50Minutes  int              `json:"overtime_50_minutes"`
	Overtime100Minutes int              `json:"overtime_100_minutes"`
	Distance           *decimal.Decimal `json:"distance_km,omitempty"`
}

type jsonEntry struct {
	ID                 string           `json:"id"`
	Date               string           `json:"date"`
	StartAt            string           `json:"start_at,omitempty"`
	EndAt              string           `json:"end_at,omitempty"`
	MealMinutes        int              `json:"meal_minutes"`
	RestMinutes        *int             `json:"rest_minutes,omitempty"`
	IsHoliday          bool             `json:"is_holiday"`
	KmStart            *decimal.Decimal `json:"km_start,omitempty"`
	KmEnd              *decimal.Decimal `json:"km_end,omitempty"`
	ExternalRef        string           `json:"external_ref,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	WorkedMinutes      int              `json:"worked_minutes"`
	Overtime50Minutes  int              `json:"overtime_50_minutes"`
	Overtime100Minutes int              `json:"overtime_100_minutes"`
	Distance           *decimal.Decimal `json:"distance_km,omitempty"`
}

// ToJSON writes records, their derived values and the policy used to derive
// them to path.
func ToJSON(records []journey.ShiftRecord, p journey.Policy, path string) error {
	sum := journey.Summarize(records, p, nil)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
		Policy: jsonPolicy{
			BaseShiftMinutes: p.BaseShiftMinutes,
			CycleStartDay:    p.CycleStartDay,
			DistanceTracking: p.DistanceTracking,
			Rotation:         p.Rotation.String(),
		},
		Totals: jsonTotals{
			WorkedMinutes:      sum.WorkedMinutes,
			Overtime50Minutes:  sum.Overtime50Minutes,
			Overtime100Minutes: sum.Overtime100Minutes,
		},
		Journeys: make([]jsonEntry, 0, len(records)),
	}
	if p.RotationAnchor != nil {
		export.Policy.RotationAnchor = p.RotationAnchor.String()
	}
	if p.DistanceTracking {
		export.Totals.Distance = &sum.Distance
	}

	for _, r := range records {
		c := journey.Calculate(r, p)
		export.Journeys = append(export.Journeys, jsonEntry{
			ID:                 r.ID,
			Date:               r.Date.String(),
			StartAt:            rfc3339OrEmpty(r.StartAt),
			EndAt:              rfc3339OrEmpty(r.EndAt),
			MealMinutes:        r.MealMinutes,
			RestMinutes:        r.RestMinutes,
			IsHoliday:          r.IsHoliday,
			KmStart:            r.KmStart,
			KmEnd:              r.KmEnd,
			ExternalRef:        r.ExternalRef,
			Notes:              r.Notes,
			WorkedMinutes:      c.WorkedMinutes,
			Overtime50Minutes:  c.Overtime50Minutes,
			Overtime100Minutes: c.Overtime100Minutes,
			Distance:           c.Distance,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func rfc3339OrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
