package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
        id         CHAR(36)     NOT NULL,
        name       VARCHAR(100) NOT NULL,
        room       ENUM('MACHADO','FRANCA','SANTOS') NOT NULL,
        date       DATETIME     NOT NULL,
        start_time CHAR(5)      NOT NULL,
        end_time   CHAR(5)      NOT NULL,
        created_at DATETIME(3)  NOT NULL,
        updated_at DATETIME(3)  NOT NULL,
        PRIMARY KEY (id),
        KEY idx_bookings_room_date (room, date),
        KEY idx_bookings_date_start (date, start_time)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	// One row per (room, local day).  Writers lock it FOR UPDATE before
	// reading the day's bookings.
	`CREATE TABLE IF NOT EXISTS booking_day_locks (
        room ENUM('MACHADO','FRANCA','SANTOS') NOT NULL,
        day  DATE NOT NULL,
        PRIMARY KEY (room, day)
    ) ENGINE=InnoDB`,
}

// Migrate creates the tables the booking repository needs.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
