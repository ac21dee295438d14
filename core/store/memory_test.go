package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/core/store"
)

func rec(id, date string) core.WorkRecord {
	return core.WorkRecord{
		ID:                id,
		Date:              core.MustParseDate(date),
		StartTime:         "09:00",
		EndTime:           "18:00",
		BreakMinutes:      60,
		ActualWorkHours:   8,
		StandardWorkHours: 8,
		Derived:           true,
	}
}

func TestMemory_SaveAndList_OrderedByDate(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveRecord(ctx, rec("b", "2025-06-12")))
	require.NoError(t, m.SaveRecord(ctx, rec("a", "2025-06-10")))
	require.NoError(t, m.SaveRecord(ctx, rec("c", "2025-07-01")))

	all, err := m.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	june, err := m.ListRange(ctx, core.MustParseDate("2025-06-01"), core.MustParseDate("2025-06-30"))
	require.NoError(t, err)
	assert.Len(t, june, 2)
}

func TestMemory_DateUniqueness(t *testing.T) {
	// GIVEN: A record on June 10
	// WHEN: A record with another ID is saved on June 10
	// THEN: It is rejected with DuplicateDateError naming the occupant
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveRecord(ctx, rec("first", "2025-06-10")))
	err := m.SaveRecord(ctx, rec("second", "2025-06-10"))

	var dup *core.DuplicateDateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "first", dup.ExistingID)
	assert.True(t, core.IsConflict(err))
}

func TestMemory_MovingRecordFreesOldDate(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveRecord(ctx, rec("a", "2025-06-10")))
	require.NoError(t, m.SaveRecord(ctx, rec("a", "2025-06-11")))

	_, found, err := m.FindByDate(ctx, core.MustParseDate("2025-06-10"))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.SaveRecord(ctx, rec("b", "2025-06-10")), "old date is free again")
}

func TestMemory_DeleteAndClear(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveRecord(ctx, rec("a", "2025-06-10")))
	require.NoError(t, m.SaveRecord(ctx, rec("b", "2025-06-11")))

	require.NoError(t, m.DeleteRecord(ctx, "a"))
	assert.ErrorIs(t, m.DeleteRecord(ctx, "a"), core.ErrRecordNotFound)
	_, err := m.GetRecord(ctx, "a")
	assert.True(t, core.IsNotFound(err))

	require.NoError(t, m.ClearRecords(ctx))
	all, err := m.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemory_SettingsDefaultUntilSaved(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	s, err := m.LoadSalarySettings(ctx)
	require.NoError(t, err)
	assert.True(t, s.BaseSalaryMonthly.Equal(decimal.NewFromInt(250000)))

	s.BaseSalaryMonthly = decimal.NewFromInt(300000)
	require.NoError(t, m.SaveSalarySettings(ctx, s))

	got, err := m.LoadSalarySettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.BaseSalaryMonthly.Equal(decimal.NewFromInt(300000)))

	o, err := m.LoadOvertimeSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultOvertimeSettings(), o)
}
