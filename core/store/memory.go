// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/overtime-engine/core"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records map[string]core.WorkRecord
	byDate  map[string]string // date -> id

	overtime *core.OvertimeSettings
	salary   *core.SalarySettings
}

var (
	_ core.RecordStore   = (*Memory)(nil)
	_ core.SettingsStore = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]core.WorkRecord),
		byDate:  make(map[string]string),
	}
}

// SaveRecord inserts or replaces by ID. A different ID on an occupied
// date is rejected.
func (m *Memory) SaveRecord(_ context.Context, rec core.WorkRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byDate[rec.Date.String()]; ok && id != rec.ID {
		return &core.DuplicateDateError{Date: rec.Date, ExistingID: id}
	}
	if prev, ok := m.records[rec.ID]; ok {
		delete(m.byDate, prev.Date.String())
	}
	m.records[rec.ID] = rec
	m.byDate[rec.Date.String()] = rec.ID
	return nil
}

func (m *Memory) GetRecord(_ context.Context, id string) (core.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return core.WorkRecord{}, core.ErrRecordNotFound
	}
	return rec, nil
}

func (m *Memory) FindByDate(_ context.Context, date core.Date) (core.WorkRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byDate[date.String()]
	if !ok {
		return core.WorkRecord{}, false, nil
	}
	return m.records[id], true, nil
}

func (m *Memory) ListRecords(_ context.Context) ([]core.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]core.WorkRecord, 0, len(m.records))
	for _, rec := range m.records {
		result = append(result, rec)
	}
	sortByDate(result)
	return result, nil
}

func (m *Memory) ListRange(_ context.Context, from, to core.Date) ([]core.WorkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	period := core.Period{Start: from, End: to}
	var result []core.WorkRecord
	for _, rec := range m.records {
		if period.Contains(rec.Date) {
			result = append(result, rec)
		}
	}
	sortByDate(result)
	return result, nil
}

func (m *Memory) DeleteRecord(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return core.ErrRecordNotFound
	}
	delete(m.records, id)
	delete(m.byDate, rec.Date.String())
	return nil
}

func (m *Memory) ClearRecords(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make(map[string]core.WorkRecord)
	m.byDate = make(map[string]string)
	return nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Memory) LoadOvertimeSettings(_ context.Context) (core.OvertimeSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.overtime == nil {
		return core.DefaultOvertimeSettings(), nil
	}
	return *m.overtime, nil
}

func (m *Memory) SaveOvertimeSettings(_ context.Context, s core.OvertimeSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overtime = &s
	return nil
}

func (m *Memory) LoadSalarySettings(_ context.Context) (core.SalarySettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.salary == nil {
		return core.DefaultSalarySettings(), nil
	}
	return *m.salary, nil
}

func (m *Memory) SaveSalarySettings(_ context.Context, s core.SalarySettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salary = &s
	return nil
}

func sortByDate(recs []core.WorkRecord) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Date.Before(recs[j].Date)
	})
}
