/*
store.go - Persistence interfaces for records and settings

PURPOSE:
  Defines the interface between the engine and whatever holds the
  worker's data. The calculation packages never touch a store; the
  record book (worktime.Book), the API and the CLI do.

KEY INTERFACES:
  RecordStore:   Work record persistence
  SettingsStore: Overtime and salary settings persistence

DATE UNIQUENESS:
  There is at most one record per calendar date. Stores enforce it at
  the storage level; worktime.Book turns a collision into either a
  DuplicateDateError or an overwrite, depending on the caller.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - core/store/memory.go: In-memory for testing

SEE ALSO:
  - worktime/book.go: Record book built on RecordStore
*/
package core

import "context"

// =============================================================================
// RECORD STORE
// =============================================================================

// RecordStore handles persistence of work records.
type RecordStore interface {
	// SaveRecord inserts or replaces the record with the same ID.
	SaveRecord(ctx context.Context, rec WorkRecord) error

	// GetRecord returns ErrRecordNotFound if the ID is unknown.
	GetRecord(ctx context.Context, id string) (WorkRecord, error)

	// FindByDate returns the record on date, if any.
	FindByDate(ctx context.Context, date Date) (WorkRecord, bool, error)

	// ListRecords returns all records ordered by date.
	ListRecords(ctx context.Context) ([]WorkRecord, error)

	// ListRange returns records with a date in [from, to], ordered by date.
	ListRange(ctx context.Context, from, to Date) ([]WorkRecord, error)

	// DeleteRecord returns ErrRecordNotFound if the ID is unknown.
	DeleteRecord(ctx context.Context, id string) error

	// ClearRecords removes every record.
	ClearRecords(ctx context.Context) error
}

// =============================================================================
// SETTINGS STORE
// =============================================================================

// SettingsStore persists the two settings objects.
// Loads return the defaults when nothing has been saved yet.
type SettingsStore interface {
	LoadOvertimeSettings(ctx context.Context) (OvertimeSettings, error)
	SaveOvertimeSettings(ctx context.Context, s OvertimeSettings) error
	LoadSalarySettings(ctx context.Context) (SalarySettings, error)
	SaveSalarySettings(ctx context.Context, s SalarySettings) error
}
