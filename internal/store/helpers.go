package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/johnwards/teasaloon/internal/database"
)

var (
	// ErrNotFound is returned when no row has the requested identifier.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a row changed between read and commit.
	ErrConflict = errors.New("entity was modified concurrently")

	// ErrInUse is returned when deleting a row that other rows still reference.
	ErrInUse = errors.New("entity is still referenced")
)

// querier is the subset of *sql.DB and *sql.Tx used by the repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// exists reports whether table has a row where column equals value.
func exists(ctx context.Context, q querier, d database.Dialect, table, column string, value int64) (bool, error) {
	var found bool
	err := q.QueryRowContext(ctx,
		d.Rebind(fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)`, table, column)), //nolint:gosec // identifiers come from static schemas
		value,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check %s.%s: %w", table, column, err)
	}
	return found, nil
}

// placeholders returns n comma-separated ? markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// nullInt64 converts an optional identifier into a driver value.
func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullString converts an optional string into a driver value.
func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
