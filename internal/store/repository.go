package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/johnwards/teasaloon/internal/database"
	"github.com/johnwards/teasaloon/internal/domain"
)

// Schema describes how an entity type maps onto its table.
type Schema[T any] struct {
	Resource string // URL segment, e.g. "OrderLines"
	Entity   string // singular name used in messages
	Table    string

	// Columns lists the writable columns, excluding id and version.
	Columns []string

	ID      func(*T) *int64
	Version func(*T) *int64

	// Args returns driver values for Columns, in order.
	Args func(*T) []any
	// Dest returns scan destinations for Columns, in order.
	Dest func(*T) []any

	// Refs are outgoing foreign keys that must resolve before a write.
	Refs []Reference[T]
	// ReferencedBy are incoming foreign keys that block a delete.
	ReferencedBy []Backref

	// BeforeCreate fills server-side defaults on a new entity.
	BeforeCreate func(*T)
}

// Reference is a foreign key held by an entity.
type Reference[T any] struct {
	Field string // payload field reported on failure
	Table string
	Value func(*T) *int64 // nil or zero means unset
}

// Backref is a foreign key column in another table pointing at this one.
type Backref struct {
	Table  string
	Column string
}

// Repository defines the persistence operations shared by every entity type.
type Repository[T any] interface {
	Schema() *Schema[T]
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, e *T) error
	CreateBatch(ctx context.Context, es []*T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id int64) error
}

// SQLRepository implements Repository for any schema on database/sql.
type SQLRepository[T any] struct {
	db     *database.DB
	schema *Schema[T]

	selectCols string
	insertSQL  string
	updateSQL  string
}

// NewSQLRepository creates a repository for schema backed by db.
func NewSQLRepository[T any](db *database.DB, schema *Schema[T]) *SQLRepository[T] {
	cols := strings.Join(schema.Columns, ", ")

	sets := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		sets[i] = c + " = ?"
	}

	return &SQLRepository[T]{
		db:         db,
		schema:     schema,
		selectCols: "id, " + cols + ", version",
		insertSQL: db.Dialect.Rebind(fmt.Sprintf(
			`INSERT INTO %s (%s) VALUES (%s) RETURNING id, version`,
			schema.Table, cols, placeholders(len(schema.Columns)),
		)),
		updateSQL: db.Dialect.Rebind(fmt.Sprintf(
			`UPDATE %s SET %s, version = version + 1 WHERE id = ? AND (? = 0 OR version = ?) RETURNING version`,
			schema.Table, strings.Join(sets, ", "),
		)),
	}
}

// Schema returns the schema the repository was built from.
func (r *SQLRepository[T]) Schema() *Schema[T] {
	return r.schema
}

func (r *SQLRepository[T]) dest(e *T) []any {
	d := make([]any, 0, len(r.schema.Columns)+2)
	d = append(d, r.schema.ID(e))
	d = append(d, r.schema.Dest(e)...)
	return append(d, r.schema.Version(e))
}

// List returns every row ordered by identifier.
func (r *SQLRepository[T]) List(ctx context.Context) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, r.selectCols, r.schema.Table), //nolint:gosec // identifiers come from static schemas
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.schema.Table, err)
	}
	defer func() { _ = rows.Close() }()

	out := []*T{}
	for rows.Next() {
		e := new(T)
		if err := rows.Scan(r.dest(e)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.schema.Entity, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

// Get retrieves a single row by identifier.
func (r *SQLRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	e := new(T)
	err := r.db.QueryRowContext(ctx,
		r.db.Dialect.Rebind(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, r.selectCols, r.schema.Table)), //nolint:gosec // identifiers come from static schemas
		id,
	).Scan(r.dest(e)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", r.schema.Entity, err)
	}
	return e, nil
}

// Exists reports whether a row with the identifier exists.
func (r *SQLRepository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, r.db.Dialect, r.schema.Table, "id", id)
}

// Count returns the number of rows in the table.
func (r *SQLRepository[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.schema.Table), //nolint:gosec // identifiers come from static schemas
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.schema.Table, err)
	}
	return n, nil
}

// prepare clears the identifier, applies defaults and validates a new entity.
func (r *SQLRepository[T]) prepare(e *T) error {
	*r.schema.ID(e) = 0
	if r.schema.BeforeCreate != nil {
		r.schema.BeforeCreate(e)
	}
	return domain.Validate(e)
}

// Create validates e and inserts it, filling in its identifier and version.
func (r *SQLRepository[T]) Create(ctx context.Context, e *T) error {
	if err := r.prepare(e); err != nil {
		return err
	}
	return r.insert(ctx, r.db, e)
}

// CreateBatch validates and inserts all entities in a single transaction.
// Nothing is written unless every entity is valid and every insert succeeds.
func (r *SQLRepository[T]) CreateBatch(ctx context.Context, es []*T) error {
	for _, e := range es {
		if err := r.prepare(e); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range es {
		if err := r.insert(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *SQLRepository[T]) insert(ctx context.Context, q querier, e *T) error {
	if err := r.checkRefs(ctx, q, e); err != nil {
		return err
	}
	if err := q.QueryRowContext(ctx, r.insertSQL, r.schema.Args(e)...).
		Scan(r.schema.ID(e), r.schema.Version(e)); err != nil {
		return fmt.Errorf("insert %s: %w", r.schema.Entity, err)
	}
	return nil
}

// Update replaces the row identified by e's identifier with e. A non-zero
// version is treated as a precondition: the write only applies if the stored
// version still matches. On success e carries the new version.
func (r *SQLRepository[T]) Update(ctx context.Context, e *T) error {
	if err := domain.Validate(e); err != nil {
		return err
	}
	if err := r.checkRefs(ctx, r.db, e); err != nil {
		return err
	}

	id := *r.schema.ID(e)
	version := r.schema.Version(e)

	args := append(r.schema.Args(e), id, *version, *version)
	err := r.db.QueryRowContext(ctx, r.updateSQL, args...).Scan(version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update %s: %w", r.schema.Entity, err)
	}

	// Nothing matched: the row is gone or its version moved on.
	found, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return fmt.Errorf("%s %d: %w", r.schema.Entity, id, ErrConflict)
}

// Delete removes the row with the identifier.
func (r *SQLRepository[T]) Delete(ctx context.Context, id int64) error {
	found, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	for _, br := range r.schema.ReferencedBy {
		used, err := exists(ctx, r.db, r.db.Dialect, br.Table, br.Column, id)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%s %d is referenced by %s: %w", r.schema.Entity, id, br.Table, ErrInUse)
		}
	}

	res, err := r.db.ExecContext(ctx,
		r.db.Dialect.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.schema.Table)), //nolint:gosec // identifiers come from static schemas
		id,
	)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.schema.Entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository[T]) checkRefs(ctx context.Context, q querier, e *T) error {
	for _, ref := range r.schema.Refs {
		v := ref.Value(e)
		if v == nil || *v == 0 {
			continue
		}
		found, err := exists(ctx, q, r.db.Dialect, ref.Table, "id", *v)
		if err != nil {
			return err
		}
		if !found {
			return domain.NewValidationError(r.schema.Entity, ref.Field, "exists",
				fmt.Sprintf("%s references missing %s row %d", ref.Field, ref.Table, *v))
		}
	}
	return nil
}
