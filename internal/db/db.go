// Package db is the local sqlite circle store used in development and tests.
package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/vighnaharta/internal/domain"

	_ "modernc.org/sqlite"
)

const circleColumns = "id, name, code, is_active, sort_order, created_at"

// DB wraps the database connection
type DB struct {
	*sql.DB
	dbPath string
}

// Init initializes the database connection and runs migrations
func Init(dbPath string) (*DB, error) {
	// Ensure data directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}

	db := &DB{sqlDB, dbPath}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// GetDBPath returns the database file path
func (db *DB) GetDBPath() string {
	return db.dbPath
}

// Ping verifies the database file is reachable
func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return domain.WrapDatabaseOperation("ping sqlite", err)
	}
	return nil
}

// ListActiveCircles retrieves active circles ordered by sort_order, then name
func (db *DB) ListActiveCircles(ctx context.Context) ([]domain.Circle, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT "+circleColumns+" FROM recharge_circles WHERE is_active = 1 ORDER BY sort_order ASC, name ASC")
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list active circles", err)
	}
	defer rows.Close()

	circles := []domain.Circle{}
	for rows.Next() {
		var c domain.Circle
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.IsActive, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, domain.WrapDatabaseOperation("list active circles", err)
		}
		circles = append(circles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapDatabaseOperation("list active circles", err)
	}

	return circles, nil
}

// GetCircleByCode retrieves an active circle by its code
func (db *DB) GetCircleByCode(ctx context.Context, code string) (*domain.Circle, error) {
	c := &domain.Circle{}
	err := db.QueryRowContext(ctx,
		"SELECT "+circleColumns+" FROM recharge_circles WHERE code = ? AND is_active = 1",
		code,
	).Scan(&c.ID, &c.Name, &c.Code, &c.IsActive, &c.SortOrder, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapCircleNotFound(code, nil)
	}
	if err != nil {
		return nil, domain.WrapDatabaseOperation("get circle by code", err)
	}
	return c, nil
}

// UpsertCircle inserts a circle or updates the one with the same code
func (db *DB) UpsertCircle(ctx context.Context, c *domain.Circle) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO recharge_circles (id, name, code, is_active, sort_order, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			is_active = excluded.is_active,
			sort_order = excluded.sort_order`,
		c.ID, c.Name, c.Code, c.IsActive, c.SortOrder, c.CreatedAt,
	)
	if err != nil {
		return domain.WrapDatabaseOperation("upsert circle", err)
	}
	return nil
}
