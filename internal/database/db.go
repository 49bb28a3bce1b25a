package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-booking-gateway/internal/config"
)

// Open connects to MySQL and verifies the connection.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// The history store sees one insert per status change; a small pool is plenty.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// schema holds the tables owned by the gateway.  Bookings themselves live in
// the backend; only the status change trail is kept here.
const schema = `
CREATE TABLE IF NOT EXISTS booking_events (
	id          CHAR(36)     NOT NULL PRIMARY KEY,
	booking_id  VARCHAR(64)  NOT NULL,
	hotel_id    VARCHAR(64)  NOT NULL DEFAULT '',
	actor_id    VARCHAR(64)  NOT NULL,
	actor_role  VARCHAR(32)  NOT NULL,
	from_status VARCHAR(32)  NOT NULL,
	to_status   VARCHAR(32)  NOT NULL,
	reason      VARCHAR(500) NOT NULL DEFAULT '',
	occurred_at DATETIME(3)  NOT NULL,
	INDEX idx_booking_events_booking (booking_id, occurred_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the gateway's tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
