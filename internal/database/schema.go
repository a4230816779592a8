package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The reservations table carries two flags: cancelled (the visible soft
// delete, nullable, NULL reads as false) and active_slot (1 while active,
// NULL once cancelled).  The unique index over
// (reserved_on, room_id, shift, active_slot) therefore allows any number
// of cancelled rows per slot but only one active row.  Both MySQL and
// SQLite treat NULLs as distinct in unique indexes, so the same design
// works for either dialect.

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(50)  NOT NULL,
		surname    VARCHAR(50)  NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id         BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		capacity   INT          NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT chk_rooms_capacity CHECK (capacity > 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservations (
		folio       BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
		client_id   BIGINT       NOT NULL,
		room_id     BIGINT       NOT NULL,
		reserved_on DATE         NOT NULL,
		shift       ENUM('MORNING','AFTERNOON','NIGHT') NOT NULL,
		event_name  VARCHAR(200) NOT NULL,
		cancelled   TINYINT(1)   NULL DEFAULT 0,
		active_slot TINYINT      NULL DEFAULT 1,
		created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_reservations_client FOREIGN KEY (client_id) REFERENCES clients (id),
		CONSTRAINT fk_reservations_room FOREIGN KEY (room_id) REFERENCES rooms (id),
		UNIQUE KEY uq_reservations_active_slot (reserved_on, room_id, shift, active_slot),
		KEY idx_reservations_date (reserved_on)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		surname    TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT    NOT NULL,
		capacity   INTEGER NOT NULL CHECK (capacity > 0),
		created_at TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		folio       INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id   INTEGER NOT NULL REFERENCES clients (id),
		room_id     INTEGER NOT NULL REFERENCES rooms (id),
		reserved_on TEXT    NOT NULL,
		shift       TEXT    NOT NULL CHECK (shift IN ('MORNING','AFTERNOON','NIGHT')),
		event_name  TEXT    NOT NULL,
		cancelled   INTEGER NULL DEFAULT 0,
		active_slot INTEGER NULL DEFAULT 1,
		created_at  TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_slot
		ON reservations (reserved_on, room_id, shift, active_slot)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_date ON reservations (reserved_on)`,
}

// Migrate creates the clients, rooms and reservations tables for the
// given driver.  Statements are idempotent so it runs on every start.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverMySQL:
		stmts = mysqlSchema
	case DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
