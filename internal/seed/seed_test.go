package seed_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/teasaloon/data"
	"github.com/johnwards/teasaloon/internal/domain"
	"github.com/johnwards/teasaloon/internal/seed"
	"github.com/johnwards/teasaloon/internal/store"
	"github.com/johnwards/teasaloon/internal/testhelpers"
)

func setup(t *testing.T) (*store.Store, *slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return store.New(testhelpers.NewMigratedDB(t)), logger, &buf
}

func statuses(r seed.Report) map[string]seed.Status {
	out := make(map[string]seed.Status, len(r))
	for _, res := range r {
		out[res.Entity] = res.Status
	}
	return out
}

func TestSeedEmbeddedFixtures(t *testing.T) {
	s, logger, _ := setup(t)
	ctx := context.Background()

	report := seed.New(data.FS, logger, s).Run(ctx)
	require.Len(t, report, 5)

	order := []string{"ingredients", "users", "categories", "products", "teas"}
	for i, res := range report {
		assert.Equal(t, order[i], res.Entity)
		assert.Equal(t, seed.StatusSeeded, res.Status, res.Entity)
		assert.Empty(t, res.Error, res.Entity)
	}

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, counts["ingredients"])
	assert.Equal(t, 3, counts["users"])
	assert.Equal(t, 4, counts["categories"])
	assert.Equal(t, 6, counts["products"])
	assert.Equal(t, 6, counts["teas"])
	assert.Zero(t, counts["orders"])
	assert.Zero(t, counts["order_lines"])
}

func TestSeedIsIdempotent(t *testing.T) {
	s, logger, buf := setup(t)
	ctx := context.Background()
	loader := seed.New(data.FS, logger, s)

	loader.Run(ctx)
	before, err := s.Counts(ctx)
	require.NoError(t, err)

	buf.Reset()
	report := loader.Run(ctx)
	for _, res := range report {
		assert.Equal(t, seed.StatusAlreadyPopulated, res.Status, res.Entity)
	}

	after, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "already populated")
}

func TestSeedSkipsPopulatedTable(t *testing.T) {
	s, logger, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.Teas.Create(ctx, &domain.Tea{Name: "House blend", Variety: "black"}))

	report := seed.New(data.FS, logger, s).Run(ctx)
	assert.Equal(t, seed.StatusAlreadyPopulated, statuses(report)["teas"])

	teas, err := s.Teas.List(ctx)
	require.NoError(t, err)
	require.Len(t, teas, 1)
	assert.Equal(t, "House blend", teas[0].Name)
}

func TestSeedFixtureContent(t *testing.T) {
	s, logger, _ := setup(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"users.json": {Data: []byte(`[
			{"USERNAME": "ana", "email": "ana@example.com", "firstname": "Ana"},
			{"Username": "ben", "Email": "ben@example.com", "userID": 77}
		]`)},
	}

	res := seed.New(fsys, logger, s).Run(ctx)
	assert.Equal(t, seed.StatusSeeded, statuses(res)["users"])

	users, err := s.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ana", users[0].Username)
	assert.Equal(t, "Ana", users[0].FirstName)
	assert.Equal(t, "ben", users[1].Username)
	assert.Equal(t, int64(2), users[1].UserID, "fixture identifiers are reassigned")
}

func TestSeedMissingFixtureIsIsolated(t *testing.T) {
	s, logger, buf := setup(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"ingredients.json": {Data: []byte(`[{"name": "Honey"}]`)},
		"categories.json":  {Data: []byte(`[{"name": "Hot drinks"}]`)},
		"teas.json":        {Data: []byte(`[{"name": "Assam", "variety": "black"}]`)},
	}

	report := seed.New(fsys, logger, s).Run(ctx)
	st := statuses(report)
	assert.Equal(t, seed.StatusSeeded, st["ingredients"])
	assert.Equal(t, seed.StatusMissing, st["users"])
	assert.Equal(t, seed.StatusSeeded, st["categories"])
	assert.Equal(t, seed.StatusMissing, st["products"])
	assert.Equal(t, seed.StatusSeeded, st["teas"])

	n, err := s.Users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "fixture file not found")
}

func TestSeedEmptyFixture(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		s, logger, buf := setup(t)

		fsys := fstest.MapFS{"teas.json": {Data: []byte(body)}}
		report := seed.New(fsys, logger, s).Run(context.Background())

		assert.Equal(t, seed.StatusEmpty, statuses(report)["teas"], body)
		assert.Contains(t, buf.String(), "level=WARN", body)
	}
}

func TestSeedUnreadableFixtureIsIsolated(t *testing.T) {
	s, logger, buf := setup(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"ingredients.json": {Data: []byte(`[{"name": "Honey"`)},
		"users.json":       {Data: []byte(`[{"username": "ana", "email": "ana@example.com"}]`)},
	}

	report := seed.New(fsys, logger, s).Run(ctx)
	st := statuses(report)
	assert.Equal(t, seed.StatusFailed, st["ingredients"])
	assert.Equal(t, seed.StatusSeeded, st["users"])
	assert.NotEmpty(t, report[0].Error)
	assert.Contains(t, buf.String(), "seeding failed")
}

func TestSeedInvalidRecordInsertsNothing(t *testing.T) {
	s, logger, _ := setup(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"categories.json": {Data: []byte(`[{"name": "Hot drinks"}, {"name": ""}]`)},
	}

	report := seed.New(fsys, logger, s).Run(ctx)
	assert.Equal(t, seed.StatusFailed, statuses(report)["categories"])

	n, err := s.Categories.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedCustomFixtureList(t *testing.T) {
	s, logger, _ := setup(t)

	fsys := fstest.MapFS{"extra-teas.json": {Data: []byte(`[{"name": "Genmaicha", "variety": "green"}]`)}}
	loader := seed.NewWithFixtures(fsys, logger, seed.NewFixture("extra-teas.json", s.Teas))

	report := loader.Run(context.Background())
	require.Len(t, report, 1)
	assert.Equal(t, seed.Result{Entity: "teas", File: "extra-teas.json", Status: seed.StatusSeeded, Count: 1}, report[0])
}
