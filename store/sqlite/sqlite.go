/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists the worker's records and settings across restarts. The
  in-memory store in core/store is the reference for behaviour; this one
  must be indistinguishable from it through the interfaces.

INTERFACES IMPLEMENTED:
  core.RecordStore:   Work records
  core.SettingsStore: Overtime and salary settings

KEY TABLES:
  work_records: One row per record. Derived hour columns are nullable so
                rows imported from legacy exports can be stored before
                they are recalculated.
  settings:     Key -> JSON document (factory.OvertimeDocument /
                factory.SalaryDocument)

DATE UNIQUENESS:
  idx_work_records_date is a unique index on the date column. Violations
  are reported as *core.DuplicateDateError carrying the occupant's ID.

WAL MODE:
  File databases are opened with WAL so the API and a concurrent CLI
  invocation can read while one of them writes.

USAGE:
  store, err := sqlite.New("./data/overtime.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  book := worktime.NewBook(store)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - core/store.go: Interface definitions
  - core/store/memory.go: In-memory implementation for testing
  - worktime/book.go: Record book using RecordStore
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/factory"
)

const (
	keyOvertimeSettings = "overtime"
	keySalarySettings   = "salary"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ core.RecordStore   = (*Store)(nil)
	_ core.SettingsStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_journal_mode=WAL"
	if dbPath == ":memory:" {
		dsn = dbPath
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS work_records (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		overnight INTEGER NOT NULL DEFAULT 0,
		standard_work_hours REAL NOT NULL,
		actual_work_hours REAL,
		overtime_hours REAL,
		shortage_hours REAL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_work_records_date
		ON work_records(date);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD STORE
// =============================================================================

const recordColumns = `id, date, start_time, end_time, break_minutes, overnight,
	standard_work_hours, actual_work_hours, overtime_hours, shortage_hours`

// SaveRecord inserts or replaces the record with the same ID.
func (s *Store) SaveRecord(ctx context.Context, rec core.WorkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO work_records (` + recordColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			break_minutes = excluded.break_minutes,
			overnight = excluded.overnight,
			standard_work_hours = excluded.standard_work_hours,
			actual_work_hours = excluded.actual_work_hours,
			overtime_hours = excluded.overtime_hours,
			shortage_hours = excluded.shortage_hours,
			updated_at = excluded.updated_at
	`

	var actual, overtime, shortage sql.NullFloat64
	if rec.Derived {
		actual = sql.NullFloat64{Float64: rec.ActualWorkHours, Valid: true}
		overtime = sql.NullFloat64{Float64: rec.OvertimeHours, Valid: true}
		shortage = sql.NullFloat64{Float64: rec.ShortageHours, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.Date.String(),
		rec.StartTime,
		nullString(rec.EndTime),
		rec.BreakMinutes,
		rec.Overnight,
		rec.StandardWorkHours,
		actual,
		overtime,
		shortage,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return s.duplicateDate(ctx, rec.Date)
		}
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// duplicateDate reports a unique-date violation with the occupant's ID.
// A failed occupant lookup is joined to the error rather than leaving
// ExistingID silently empty.
func (s *Store) duplicateDate(ctx context.Context, date core.Date) error {
	dup := &core.DuplicateDateError{Date: date}
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM work_records WHERE date = ?", date.String()).Scan(&dup.ExistingID)
	if err != nil {
		return errors.Join(dup, fmt.Errorf("failed to look up record on %s: %w", date, err))
	}
	return dup
}

// GetRecord returns core.ErrRecordNotFound if the ID is unknown.
func (s *Store) GetRecord(ctx context.Context, id string) (core.WorkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM work_records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.WorkRecord{}, core.ErrRecordNotFound
	}
	return rec, err
}

// FindByDate returns the record on date, if any.
func (s *Store) FindByDate(ctx context.Context, date core.Date) (core.WorkRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM work_records WHERE date = ?", date.String())
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.WorkRecord{}, false, nil
	}
	if err != nil {
		return core.WorkRecord{}, false, err
	}
	return rec, true, nil
}

// ListRecords returns all records ordered by date.
func (s *Store) ListRecords(ctx context.Context) ([]core.WorkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM work_records ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListRange returns records with a date in [from, to], ordered by date.
// ISO dates compare correctly as text.
func (s *Store) ListRange(ctx context.Context, from, to core.Date) ([]core.WorkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM work_records WHERE date >= ? AND date <= ? ORDER BY date",
		from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// DeleteRecord returns core.ErrRecordNotFound if the ID is unknown.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM work_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

// ClearRecords removes every record.
func (s *Store) ClearRecords(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM work_records")
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (core.WorkRecord, error) {
	var (
		rec                        core.WorkRecord
		date                       string
		endTime                    sql.NullString
		actual, overtime, shortage sql.NullFloat64
	)
	err := row.Scan(&rec.ID, &date, &rec.StartTime, &endTime, &rec.BreakMinutes, &rec.Overnight,
		&rec.StandardWorkHours, &actual, &overtime, &shortage)
	if err != nil {
		return core.WorkRecord{}, err
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.WorkRecord{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.Date = d
	rec.EndTime = endTime.String
	if actual.Valid && shortage.Valid {
		rec.ActualWorkHours = actual.Float64
		rec.OvertimeHours = overtime.Float64
		rec.ShortageHours = shortage.Float64
		rec.Derived = true
	}
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]core.WorkRecord, error) {
	var result []core.WorkRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// =============================================================================
// SETTINGS STORE
// =============================================================================

// LoadOvertimeSettings returns the saved settings or the defaults.
func (s *Store) LoadOvertimeSettings(ctx context.Context) (core.OvertimeSettings, error) {
	var doc factory.OvertimeDocument
	found, err := s.loadSetting(ctx, keyOvertimeSettings, &doc)
	if err != nil || !found {
		return core.DefaultOvertimeSettings(), err
	}
	return doc.Build()
}

// SaveOvertimeSettings persists the overtime settings.
func (s *Store) SaveOvertimeSettings(ctx context.Context, settings core.OvertimeSettings) error {
	return s.saveSetting(ctx, keyOvertimeSettings, factory.OvertimeDocumentOf(settings))
}

// LoadSalarySettings returns the saved settings or the defaults.
func (s *Store) LoadSalarySettings(ctx context.Context) (core.SalarySettings, error) {
	var doc factory.SalaryDocument
	found, err := s.loadSetting(ctx, keySalarySettings, &doc)
	if err != nil || !found {
		return core.DefaultSalarySettings(), err
	}
	return doc.Build()
}

// SaveSalarySettings persists the salary settings.
func (s *Store) SaveSalarySettings(ctx context.Context, settings core.SalarySettings) error {
	return s.saveSetting(ctx, keySalarySettings, factory.SalaryDocumentOf(settings))
}

func (s *Store) loadSetting(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value_json FROM settings WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s settings: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("corrupt %s settings: %w", key, err)
	}
	return true, nil
}

func (s *Store) saveSetting(ctx context.Context, key string, doc any) error {
	data, err := factory.EncodeJSON(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save %s settings: %w", key, err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
