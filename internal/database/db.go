package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables and reservations schema when it does
// not exist yet.  Reservations carry secondary indexes on table_id and
// requester_email for the availability check and the per-requester
// listing.  There is deliberately no foreign key from reservations to
// tables; the reference is validated by business logic at creation time.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tables (
			id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name       VARCHAR(191)    NOT NULL,
			capacity   INT UNSIGNED    NOT NULL,
			created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			table_id         BIGINT UNSIGNED NOT NULL,
			requester_email  VARCHAR(191)    NOT NULL,
			start_time       DATETIME        NOT NULL,
			duration_minutes INT UNSIGNED    NOT NULL DEFAULT 60,
			party_size       INT UNSIGNED    NOT NULL DEFAULT 1,
			created_at       DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_reservations_table_id (table_id),
			KEY idx_reservations_requester_email (requester_email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
