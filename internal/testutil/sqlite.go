// Package testutil provides fixtures shared by package tests.
package testutil

import (
    "context"
    "database/sql"
    "path/filepath"
    "testing"

    "github.com/iliyamo/coworking-reservation/internal/database"
)

// NewSQLite opens a migrated SQLite database in the test's temp dir and
// closes it when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
    t.Helper()
    db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "coworking.db"))
    if err != nil {
        t.Fatalf("open sqlite: %v", err)
    }
    t.Cleanup(func() { db.Close() })
    if err := database.Migrate(context.Background(), db, database.DriverSQLite); err != nil {
        t.Fatalf("migrate: %v", err)
    }
    return db
}
