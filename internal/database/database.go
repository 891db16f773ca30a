package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// OpenDB creates and configures the MySQL connection pool for dsn.
// The DSN must carry parseTime=true so DATETIME columns scan into time.Time.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 2. Configure the connection pool settings.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. Ping the database to verify the connection.
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS price_plans (
		id CHAR(36) PRIMARY KEY,
		price DOUBLE NOT NULL,
		category VARCHAR(255) NOT NULL,
		features JSON NOT NULL,
		description TEXT NOT NULL,
		created_at DATETIME(3) NOT NULL,
		updated_at DATETIME(3) NOT NULL,
		CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id CHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category VARCHAR(255) NOT NULL,
		image VARCHAR(1024) NOT NULL,
		image_key VARCHAR(512) NOT NULL,
		link VARCHAR(1024) NULL,
		created_at DATETIME(3) NOT NULL,
		updated_at DATETIME(3) NOT NULL
	)`,
	// price_plan_id deliberately has no foreign key: plans can be deleted
	// while inquiries that reference them are kept.
	`CREATE TABLE IF NOT EXISTS queries (
		id CHAR(36) PRIMARY KEY,
		email VARCHAR(320) NOT NULL,
		price_plan_id CHAR(36) NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME(3) NOT NULL,
		INDEX idx_queries_price_plan_id (price_plan_id)
	)`,
}

// Migrate creates the three collections if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
