package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sadopc/shiftlog/internal/journey"
	"github.com/sadopc/shiftlog/internal/logger"
)

var ErrNotFound = errors.New("journey not found")

// JourneyFilter narrows ListJourneys by date range (inclusive).
type JourneyFilter struct {
	From  *journey.Date
	To    *journey.Date
	Limit int
}

const journeyColumns = `id, date, start_at, end_at, meal_minutes, rest_minutes, is_holiday,
	km_start, km_end, external_ref, notes, created_at, updated_at`

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// CreateJourney validates r, checks that no journey exists on r.Date and
// inserts it with a fresh id and timestamps. The check and the insert share
// one transaction.
func (s *Store) CreateJourney(r journey.ShiftRecord) (*journey.ShiftRecord, error) {
	if err := journey.ValidateRecord(r); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	existing, err := listDates(tx)
	if err != nil {
		return nil, err
	}
	if !journey.CanCreate(existing, r.Date) {
		logger.Warn("duplicate journey rejected", "date", r.Date)
		return nil, fmt.Errorf("create journey on %s: %w", r.Date, journey.ErrDuplicateDate)
	}

	now := time.Now().UTC().Truncate(time.Second)
	r.ID = uuid.NewString()
	r.CreatedAt, r.UpdatedAt = now, now

	_, err = tx.Exec(
		`INSERT INTO journeys (`+journeyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Date.String(), timeArg(r.StartAt), timeArg(r.EndAt), r.MealMinutes, intArg(r.RestMinutes),
		boolArg(r.IsHoliday), decimalArg(r.KmStart), decimalArg(r.KmEnd), r.ExternalRef, r.Notes,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert journey: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit journey: %w", err)
	}

	logger.Info("journey created", "id", r.ID, "date", r.Date)
	return &r, nil
}

// UpdateJourney replaces the editable fields of the journey with r.ID.
// Moving it onto a date held by another journey is rejected.
func (s *Store) UpdateJourney(r journey.ShiftRecord) (*journey.ShiftRecord, error) {
	if err := journey.ValidateRecord(r); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	existing, err := listDates(tx)
	if err != nil {
		return nil, err
	}
	if !journey.CanReschedule(existing, r.ID, r.Date) {
		return nil, fmt.Errorf("move journey to %s: %w", r.Date, journey.ErrDuplicateDate)
	}

	now := time.Now().UTC().Truncate(time.Second)
	res, err := tx.Exec(
		`UPDATE journeys SET date = ?, start_at = ?, end_at = ?, meal_minutes = ?, rest_minutes = ?,
		 is_holiday = ?, km_start = ?, km_end = ?, external_ref = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		r.Date.String(), timeArg(r.StartAt), timeArg(r.EndAt), r.MealMinutes, intArg(r.RestMinutes),
		boolArg(r.IsHoliday), decimalArg(r.KmStart), decimalArg(r.KmEnd), r.ExternalRef, r.Notes,
		now.Format(time.RFC3339), r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update journey: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update journey %s: %w", r.ID, ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit journey: %w", err)
	}

	logger.Info("journey updated", "id", r.ID, "date", r.Date)
	return s.GetJourney(r.ID)
}

func (s *Store) DeleteJourney(id string) error {
	res, err := s.db.Exec(`DELETE FROM journeys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete journey: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete journey %s: %w", id, ErrNotFound)
	}
	logger.Info("journey deleted", "id", id)
	return nil
}

func (s *Store) GetJourney(id string) (*journey.ShiftRecord, error) {
	rows, err := s.db.Query(`SELECT `+journeyColumns+` FROM journeys WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get journey %s: %w", id, err)
	}
	records, err := scanJourneys(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("get journey %s: %w", id, ErrNotFound)
	}
	return &records[0], nil
}

// GetJourneyByDate returns the journey on d, or nil if there is none.
func (s *Store) GetJourneyByDate(d journey.Date) (*journey.ShiftRecord, error) {
	records, err := s.ListJourneys(JourneyFilter{From: &d, To: &d})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ListJourneys returns journeys newest first.
func (s *Store) ListJourneys(f JourneyFilter) ([]journey.ShiftRecord, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, f.From.String())
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, f.To.String())
	}
	query += ` ORDER BY date DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	return scanJourneys(rows)
}

func listDates(q queryer) ([]journey.ShiftRecord, error) {
	rows, err := q.Query(`SELECT id, date FROM journeys`)
	if err != nil {
		return nil, fmt.Errorf("list journey dates: %w", err)
	}
	defer rows.Close()

	var out []journey.ShiftRecord
	for rows.Next() {
		var id, date string
		if err := rows.Scan(&id, &date); err != nil {
			return nil, err
		}
		d, err := journey.ParseDate(date)
		if err != nil {
			return nil, err
		}
		out = append(out, journey.ShiftRecord{ID: id, Date: d})
	}
	return out, rows.Err()
}

func scanJourneys(rows *sql.Rows) ([]journey.ShiftRecord, error) {
	defer rows.Close()

	var records []journey.ShiftRecord
	for rows.Next() {
		var (
			r                  journey.ShiftRecord
			date, created, upd string
			startAt, endAt     sql.NullString
			kmStart, kmEnd     sql.NullString
			rest               sql.NullInt64
			holiday            int
		)
		if err := rows.Scan(&r.ID, &date, &startAt, &endAt, &r.MealMinutes, &rest, &holiday,
			&kmStart, &kmEnd, &r.ExternalRef, &r.Notes, &created, &upd); err != nil {
			return nil, err
		}

		d, err := journey.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("journey %s: %w", r.ID, err)
		}
		r.Date = d
		r.StartAt = parseTime(startAt)
		r.EndAt = parseTime(endAt)
		if rest.Valid {
			n := int(rest.Int64)
			r.RestMinutes = &n
		}
		r.IsHoliday = holiday == 1
		if r.KmStart, err = parseDecimal(kmStart); err != nil {
			return nil, fmt.Errorf("journey %s km_start: %w", r.ID, err)
		}
		if r.KmEnd, err = parseDecimal(kmEnd); err != nil {
			return nil, fmt.Errorf("journey %s km_end: %w", r.ID, err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		r.UpdatedAt, _ = time.Parse(time.RFC3339, upd)

		records = append(records, r)
	}
	return records, rows.Err()
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func intArg(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func boolArg(b bool) int {
	if b {
		return 1
	}
	return 0
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseTime(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func parseDecimal(v sql.NullString) (*decimal.Decimal, error) {
	if !v.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
