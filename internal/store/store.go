package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnwards/teasaloon/internal/database"
	"github.com/johnwards/teasaloon/internal/domain"
)

// Store holds the repository for every entity type.
type Store struct {
	DB          *database.DB
	Categories  Repository[domain.Category]
	Ingredients Repository[domain.Ingredient]
	Products    Repository[domain.Product]
	Teas        Repository[domain.Tea]
	Users       Repository[domain.User]
	Orders      Repository[domain.Order]
	OrderLines  Repository[domain.OrderLine]
}

// New creates a Store with all repositories initialized.
func New(db *database.DB) *Store {
	return &Store{
		DB:          db,
		Categories:  NewSQLRepository(db, CategorySchema),
		Ingredients: NewSQLRepository(db, IngredientSchema),
		Products:    NewSQLRepository(db, ProductSchema),
		Teas:        NewSQLRepository(db, TeaSchema),
		Users:       NewSQLRepository(db, UserSchema),
		Orders:      NewSQLRepository(db, OrderSchema),
		OrderLines:  NewSQLRepository(db, OrderLineSchema),
	}
}

// Counts returns the number of rows in every data table.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(database.Tables))
	for _, table := range database.Tables {
		var n int
		if err := s.DB.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table), //nolint:gosec // table names are hardcoded constants
		).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

// Truncate deletes every row from every data table in foreign-key-safe order
// and restarts identifier sequences, so a following seed assigns identifiers
// from 1 again.
func (s *Store) Truncate(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if s.DB.Dialect == database.Postgres {
		if _, err := tx.ExecContext(ctx, "TRUNCATE "+strings.Join(database.Tables, ", ")+" RESTART IDENTITY"); err != nil {
			return fmt.Errorf("truncate tables: %w", err)
		}
	} else {
		for _, table := range database.Tables {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
				return fmt.Errorf("clear table %s: %w", table, err)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table); err != nil {
				return fmt.Errorf("reset sequence %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
