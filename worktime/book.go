/*
book.go - The worker's record book with one-record-per-date enforcement

PURPOSE:
  Wraps a core.RecordStore with the record-keeping rules of the
  application. The store persists; the book decides.

INVARIANT:
  At most one record per calendar date.

  Saving a new record on a date that already has one is rejected with a
  DuplicateDateError unless the caller asks to overwrite. An overwrite
  replaces the existing record but keeps its ID, so links to it stay
  valid.

MIGRATE-ON-READ:
  Records persisted before derived hours existed come back from the
  store with Derived == false. Every read path recalculates them from
  their own standard-hours snapshot and writes the result back, so the
  migration happens once per record.

EXAMPLE:
  book := worktime.NewBook(store)

  rec, _ := worktime.NewRecord(worktime.NewRecordID(), date, shift, settings)
  saved, err := book.Save(ctx, rec, false)
  if errors.Is(err, core.ErrDuplicateDate) {
      // ask the user, then
      saved, err = book.Save(ctx, rec, true)
  }

SEE ALSO:
  - core/store.go: RecordStore contract
  - derive.go: Recalculate
*/
package worktime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/warp/overtime-engine/core"
)

// =============================================================================
// BOOK
// =============================================================================

// Book is the record book over a RecordStore.
type Book struct {
	store  core.RecordStore
	logger *slog.Logger
}

// NewBook creates a record book. Logging goes to slog.Default().
func NewBook(store core.RecordStore) *Book {
	return &Book{store: store, logger: slog.Default()}
}

// WithLogger returns a copy of the book that logs to logger.
func (b *Book) WithLogger(logger *slog.Logger) *Book {
	return &Book{store: b.store, logger: logger}
}

// Save stores rec and returns what was actually persisted.
//
// An existing ID is an update. A new ID on an occupied date fails with
// DuplicateDateError unless overwrite is set, in which case the existing
// record is replaced and its ID kept.
func (b *Book) Save(ctx context.Context, rec core.WorkRecord, overwrite bool) (core.WorkRecord, error) {
	if rec.ID == "" {
		rec.ID = NewRecordID()
	}

	existing, found, err := b.store.FindByDate(ctx, rec.Date)
	if err != nil {
		return core.WorkRecord{}, fmt.Errorf("lookup %s: %w", rec.Date, err)
	}

	if found && existing.ID != rec.ID {
		if !overwrite {
			return core.WorkRecord{}, &core.DuplicateDateError{Date: rec.Date, ExistingID: existing.ID}
		}
		if _, err := b.store.GetRecord(ctx, rec.ID); err == nil {
			// rec moved onto an occupied date: the occupant goes, rec keeps its ID.
			if err := b.store.DeleteRecord(ctx, existing.ID); err != nil {
				return core.WorkRecord{}, err
			}
		} else if errors.Is(err, core.ErrRecordNotFound) {
			rec.ID = existing.ID
		} else {
			return core.WorkRecord{}, err
		}
	}

	if err := b.store.SaveRecord(ctx, rec); err != nil {
		return core.WorkRecord{}, err
	}
	return rec, nil
}

// Get returns one record, migrating it if needed.
func (b *Book) Get(ctx context.Context, id string) (core.WorkRecord, error) {
	rec, err := b.store.GetRecord(ctx, id)
	if err != nil {
		return core.WorkRecord{}, err
	}
	return b.migrate(ctx, rec)
}

// Delete removes one record.
func (b *Book) Delete(ctx context.Context, id string) error {
	return b.store.DeleteRecord(ctx, id)
}

// Clear removes every record.
func (b *Book) Clear(ctx context.Context) error {
	return b.store.ClearRecords(ctx)
}

// Records returns every record ordered by date.
func (b *Book) Records(ctx context.Context) ([]core.WorkRecord, error) {
	recs, err := b.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return b.migrateAll(ctx, recs)
}

// RecordsInMonth returns the records of one month ordered by date.
func (b *Book) RecordsInMonth(ctx context.Context, key core.MonthKey) ([]core.WorkRecord, error) {
	p := key.Period()
	recs, err := b.store.ListRange(ctx, p.Start, p.End)
	if err != nil {
		return nil, err
	}
	return b.migrateAll(ctx, recs)
}

// =============================================================================
// MIGRATION
// =============================================================================

func (b *Book) migrateAll(ctx context.Context, recs []core.WorkRecord) ([]core.WorkRecord, error) {
	out := make([]core.WorkRecord, 0, len(recs))
	for _, rec := range recs {
		migrated, err := b.migrate(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, migrated)
	}
	return out, nil
}

func (b *Book) migrate(ctx context.Context, rec core.WorkRecord) (core.WorkRecord, error) {
	if rec.Derived || !rec.HasEndTime() {
		return rec, nil
	}
	migrated, err := Recalculate(rec)
	if err != nil {
		return core.WorkRecord{}, fmt.Errorf("migrate record %s: %w", rec.ID, err)
	}
	if err := b.store.SaveRecord(ctx, migrated); err != nil {
		return core.WorkRecord{}, fmt.Errorf("persist migrated record %s: %w", rec.ID, err)
	}
	b.logger.Debug("migrated legacy record", "id", rec.ID, "date", rec.Date.String())
	return migrated, nil
}
