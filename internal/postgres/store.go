// Package postgres reads recharge circles directly from the hosted Postgres
// database behind the site.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/vighnaharta/internal/domain"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute

	circleColumns = "id::text, name, code, is_active, sort_order, created_at"
)

// Store is a CircleRepository backed by lib/pq
type Store struct {
	db *sql.DB
}

// Open connects to the database at uri and verifies the connection
func Open(ctx context.Context, uri string) (*Store, error) {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	s := &Store{db: db}
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.WrapDatabaseOperation("ping postgres", err)
	}
	return nil
}

// Close closes the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// ListActiveCircles retrieves active circles ordered by sort_order, then name
func (s *Store) ListActiveCircles(ctx context.Context) ([]domain.Circle, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+circleColumns+" FROM recharge_circles WHERE is_active = true ORDER BY sort_order ASC, name ASC")
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
func (s *Store) GetCircleByCode(ctx context.Context, code string) (*domain.Circle, error) {
	c := &domain.Circle{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+circleColumns+" FROM recharge_circles WHERE code = $1 AND is_active = true",
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
