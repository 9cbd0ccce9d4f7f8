package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a fresh in-memory store. A single connection keeps the
// in-memory database alive and shared across queries.
func setupTestDB(t *testing.T) {
	t.Helper()

	err := InitDB(":memory:")
	require.NoError(t, err)
	DB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		CloseDB()
	})
}
