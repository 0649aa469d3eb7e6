package testutil

import (
	"database/sql"
	"testing"

	"github.com/jjimmyk/planningp/internal/db"
)

// NewTestDB opens a migrated in-memory planning database that is closed
// when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
