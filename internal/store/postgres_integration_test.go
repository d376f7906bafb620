//go:build integration

package store_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/johnwards/teasaloon/data"
	"github.com/johnwards/teasaloon/internal/database"
	"github.com/johnwards/teasaloon/internal/domain"
	"github.com/johnwards/teasaloon/internal/seed"
	"github.com/johnwards/teasaloon/internal/store"
)

// setupPostgres starts a PostgreSQL container and returns a migrated store
// backed by it.
func setupPostgres(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("teasaloon"),
		postgres.WithUsername("teasaloon"),
		postgres.WithPassword("teasaloon"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.Equal(t, database.Postgres, db.Dialect)

	require.NoError(t, database.Migrate(ctx, db))
	require.NoError(t, database.Migrate(ctx, db), "second migrate must be a no-op")

	return store.New(db)
}

func TestPostgresSeedAndCRUD(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	loader := seed.New(data.FS, slog.New(slog.NewTextHandler(io.Discard, nil)), s)

	report := loader.Run(ctx)
	for _, r := range report {
		assert.Equal(t, seed.StatusSeeded, r.Status, r.Entity)
	}

	products, err := s.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.False(t, products[0].Price.IsZero())

	line := &domain.OrderLine{Quantity: 50, ProductID: domain.Ref{ID: products[1].ProductID}}
	require.NoError(t, s.OrderLines.Create(ctx, line))
	assert.Equal(t, int64(1), line.OrderLineID)

	got, err := s.OrderLines.Get(ctx, line.OrderLineID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Quantity)
	assert.Equal(t, products[1].ProductID, got.ProductID.ID)

	got.Quantity = 7
	require.NoError(t, s.OrderLines.Update(ctx, got))

	stale := *got
	stale.Version = 1
	assert.True(t, errors.Is(s.OrderLines.Update(ctx, &stale), store.ErrConflict))

	assert.True(t, errors.Is(s.Products.Delete(ctx, products[1].ProductID), store.ErrInUse))
	require.NoError(t, s.OrderLines.Delete(ctx, line.OrderLineID))
	require.NoError(t, s.Products.Delete(ctx, products[1].ProductID))

	order := &domain.Order{PaymentMode: "cash", Reservation: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Orders.Create(ctx, order))
	gotOrder, err := s.Orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.True(t, order.Reservation.Equal(gotOrder.Reservation))
	assert.False(t, gotOrder.OrderCreationTime.IsZero())

	tea := &domain.Tea{Name: "Gyokuro", Variety: "green", Price: decimal.RequireFromString("12.75")}
	require.NoError(t, s.Teas.Create(ctx, tea))
	gotTea, err := s.Teas.Get(ctx, tea.TeaID)
	require.NoError(t, err)
	assert.True(t, tea.Price.Equal(gotTea.Price))
}

func TestPostgresTruncateRestartsIdentity(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	loader := seed.New(data.FS, slog.New(slog.NewTextHandler(io.Discard, nil)), s)

	loader.Run(ctx)
	require.NoError(t, s.Truncate(ctx))

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	for table, n := range counts {
		assert.Zero(t, n, table)
	}

	loader.Run(ctx)
	p, err := s.Products.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, int64(1), *p.CategoryID)
}
