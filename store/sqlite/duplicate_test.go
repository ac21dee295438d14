package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/core"
)

func TestDuplicateDate_LookupFailureIsReported(t *testing.T) {
	// GIVEN: A store whose database can no longer be queried
	store, err := New(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// WHEN: A date conflict is reported
	err = store.duplicateDate(context.Background(), core.MustParseDate("2025-06-10"))

	// THEN: It is still a duplicate, and the failed lookup is not swallowed
	var dup *core.DuplicateDateError
	require.ErrorAs(t, err, &dup)
	assert.Empty(t, dup.ExistingID)
	assert.True(t, core.IsConflict(err))
	assert.Contains(t, err.Error(), "failed to look up record on 2025-06-10")
}

func TestDuplicateDate_CarriesOccupantID(t *testing.T) {
	store, err := New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	occupant := core.WorkRecord{
		ID:                "occupant",
		Date:              core.MustParseDate("2025-06-10"),
		StartTime:         "09:00",
		StandardWorkHours: 8,
		Derived:           true,
	}
	require.NoError(t, store.SaveRecord(ctx, occupant))

	err = store.duplicateDate(ctx, occupant.Date)
	var dup *core.DuplicateDateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "occupant", dup.ExistingID)
	assert.Equal(t, dup, err, "no lookup error joined")
}
