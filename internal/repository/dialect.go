package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"
    "modernc.org/sqlite"
    sqlite3 "modernc.org/sqlite/lib"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// querier is satisfied by both *sql.DB and *sql.Tx so read helpers can
// run either inside a unit of work or on their own.
type querier interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isDuplicateKey reports whether err is a unique-constraint violation
// from either supported driver.
func isDuplicateKey(err error) bool {
    var myErr *mysql.MySQLError
    if errors.As(err, &myErr) {
        return myErr.Number == mysqlDuplicateEntry
    }
    var liteErr *sqlite.Error
    if errors.As(err, &liteErr) {
        switch liteErr.Code() {
        case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
            return true
        }
    }
    return false
}
