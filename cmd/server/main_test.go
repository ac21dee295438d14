package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ClosesStoreWhenCommandFails(t *testing.T) {
	// GIVEN: A command that opens the database and then fails
	dbFile := filepath.Join(t.TempDir(), "overtime.db")

	// WHEN: It runs
	err := run([]string{"--db", dbFile, "--today", "2025-06-15", "summary", "2025-13"})

	// THEN: The error surfaces and the database is closed anyway
	require.Error(t, err)
	require.NotNil(t, store, "the command opened the store")
	_, err = store.ListRecords(context.Background())
	assert.Error(t, err, "store still open")
}

func TestRun_OfflineCommandsDoNotOpenDatabase(t *testing.T) {
	for _, args := range [][]string{
		{"workdays", "2024-12"},
		{"holidays", "2025"},
	} {
		t.Run(args[0], func(t *testing.T) {
			dbFile := filepath.Join(t.TempDir(), "overtime.db")

			err := run(append([]string{"--db", dbFile, "--today", "2025-06-15"}, args...))
			require.NoError(t, err)

			assert.Nil(t, store)
			assert.NoFileExists(t, dbFile)
		})
	}
}
