package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/timefmt"
)

func at(d journey.Date, hh, mm int) *time.Time {
	t := time.Date(d.Year, d.Month, d.Day, hh, mm, 0, 0, time.UTC)
	return &t
}

func km(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// sampleData: an 8h50 day with overtime and odometer readings, a
// holiday and a day with no times.
func sampleData() []journey.ShiftRecord {
	mon := journey.NewDate(2024, time.March, 4)
	tue := mon.AddDays(1)
	wed := mon.AddDays(2)
	rest := 10

	return []journey.ShiftRecord{
		{
			ID:          "a",
			Date:        mon,
			StartAt:     at(mon, 8, 0),
			EndAt:       at(mon, 18, 0),
			MealMinutes: 60,
			RestMinutes: &rest,
			KmStart:     km("1000"),
			KmEnd:       km("1120.5"),
			ExternalRef: "RV-1",
			Notes:       "long route",
		},
		{
			ID:        "b",
			Date:      tue,
			StartAt:   at(tue, 8, 0),
			EndAt:     at(tue, 14, 0),
			IsHoliday: true,
		},
		{
			ID:   "c",
			Date: wed,
		},
	}
}

func tracking() journey.Policy {
	p := journey.DefaultPolicy()
	p.DistanceTracking = true
	return p
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journeys.csv")

	if err := ToCSV(sampleData(), tracking(), timefmt.PtBR, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(rows))
	}

	for i, h := range csvHeader {
		if rows[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	row := rows[1]
	want := map[int]string{
		0:  "2024-03-04",
		1:  "08:00",
		2:  "18:00",
		3:  "60",
		4:  "10",
		5:  "no",
		6:  "1000",
		7:  "1120.5",
		8:  "RV-1",
		9:  "long route",
		10: "08:50",
		11: "01:30",
		12: "00:00",
		13: "120.5",
	}
	for col, v := range want {
		if row[col] != v {
			t.Fatalf("row 1 col %d (%s) = %q, want %q", col, csvHeader[col], row[col], v)
		}
	}

	holiday := rows[2]
	if holiday[5] != "yes" || holiday[10] != "06:00" || holiday[12] != "06:00" || holiday[11] != "00:00" {
		t.Fatalf("unexpected holiday row %v", holiday)
	}
	if holiday[13] != "" {
		t.Fatalf("distance without readings should be empty, got %q", holiday[13])
	}

	empty := rows[3]
	if empty[1] != "" || empty[2] != "" || empty[10] != "00:00" {
		t.Fatalf("unexpected row without times %v", empty)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, journey.DefaultPolicy(), timefmt.PtBR, path); err != nil {
		t.Fatal(err)
	}
	if rows := readCSV(t, path); len(rows) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(rows))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, journey.DefaultPolicy(), timefmt.PtBR, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestWriteCSVSpecialCharacters(t *testing.T) {
	d := journey.NewDate(2024, time.March, 4)
	records := []journey.ShiftRecord{{
		Date:  d,
		Notes: `notes with "quotes" and, commas`,
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records, journey.DefaultPolicy(), timefmt.PtBR); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if rows[1][9] != `notes with "quotes" and, commas` {
		t.Fatalf("notes not preserved: %q", rows[1][9])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journeys.json")

	if err := ToJSON(sampleData(), tracking(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Count != 3 || len(out.Journeys) != 3 {
		t.Fatalf("count = %d, journeys = %d, want 3", out.Count, len(out.Journeys))
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at is empty")
	}
	if out.Policy.BaseShiftMinutes != 440 || out.Policy.Rotation != "6x2" {
		t.Fatalf("unexpected policy %+v", out.Policy)
	}
	if out.Totals.WorkedMinutes != 890 || out.Totals.Overtime50Minutes != 90 || out.Totals.Overtime100Minutes != 360 {
		t.Fatalf("unexpected totals %+v", out.Totals)
	}
	if out.Totals.Distance == nil || !out.Totals.Distance.Equal(decimal.RequireFromString("120.5")) {
		t.Fatalf("distance total = %v, want 120.5", out.Totals.Distance)
	}

	first := out.Journeys[0]
	if first.ID != "a" || first.Date != "2024-03-04" || first.StartAt != "2024-03-04T08:00:00Z" {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if first.Distance == nil || !first.Distance.Equal(decimal.RequireFromString("120.5")) {
		t.Fatalf("first distance = %v", first.Distance)
	}

	last := out.Journeys[2]
	if last.StartAt != "" || last.EndAt != "" || last.Distance != nil {
		t.Fatalf("empty journey should omit optional fields: %+v", last)
	}
}

func TestToJSONDistanceOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journeys.json")

	if err := ToJSON(sampleData(), journey.DefaultPolicy(), path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Totals.Distance != nil {
		t.Fatalf("distance total should be omitted, got %v", out.Totals.Distance)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, journey.DefaultPolicy(), path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"journeys": []`) {
		t.Fatalf("expected empty journeys array, got %s", data)
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, journey.DefaultPolicy(), "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// Report
// ============================================================

func TestReportRender(t *testing.T) {
	r := Report{
		Title:   "março de 2024",
		Records: sampleData(),
		Policy:  tracking(),
		Locale:  timefmt.PtBR,
	}
	out := r.Render()

	for _, want := range []string{
		"março de 2024",
		"04/03/2024",
		"05/03/2024 *",
		"long route",
		"Total",
		"Journeys:       3",
		"Worked:         14:50",
		"Overtime 50%:   01:30",
		"Overtime 100%:  06:00",
		"Distance:       120.5 km",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportHidesDistance(t *testing.T) {
	r := Report{Records: sampleData(), Policy: journey.DefaultPolicy(), Locale: timefmt.EnUS}
	out := r.Render()

	if strings.Contains(out, "Distance") || strings.Contains(out, "KM") {
		t.Fatalf("distance should be hidden when tracking is off:\n%s", out)
	}
	if !strings.Contains(out, "03/04/2024") {
		t.Fatalf("expected en-US date:\n%s", out)
	}
}

func TestToReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	r := Report{Records: sampleData(), Policy: journey.DefaultPolicy(), Locale: timefmt.PtBR}

	if err := ToReport(r, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != r.Render() {
		t.Fatal("file content differs from Render")
	}

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != string(data) {
		t.Fatal("WriteTo differs from Render")
	}
}
