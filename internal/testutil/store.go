package testutil

import (
	"path/filepath"
	"testing"

	"github.com/nhle/tasks/internal/store"
)

// NewTestStore creates a SQLiteStore in a temporary directory with all
// migrations applied. It automatically closes the store when the test
// completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	return OpenTestStore(t, filepath.Join(t.TempDir(), "tasks.db"))
}

// OpenTestStore opens a SQLiteStore at path, closing it when the test
// completes. Opening the same path twice simulates a process restart.
func OpenTestStore(t *testing.T, path string) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
