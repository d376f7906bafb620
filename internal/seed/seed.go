package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/johnwards/teasaloon/internal/store"
)

// Status is the outcome of loading a single fixture.
type Status string

// Fixture outcomes.
const (
	StatusSeeded           Status = "seeded"
	StatusAlreadyPopulated Status = "already_populated"
	StatusMissing          Status = "missing"
	StatusEmpty            Status = "empty"
	StatusFailed           Status = "failed"
)

// Result describes what happened to one fixture.
type Result struct {
	Entity string `json:"entity"`
	File   string `json:"file"`
	Status Status `json:"status"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

// Report lists fixture results in load order.
type Report []Result

// Fixture loads one JSON file into one table.
type Fixture interface {
	Load(ctx context.Context, fsys fs.FS, logger *slog.Logger) Result
}

// NewFixture returns a Fixture that fills repo from the JSON array in file.
func NewFixture[T any](file string, repo store.Repository[T]) Fixture {
	return &fixture[T]{file: file, repo: repo}
}

type fixture[T any] struct {
	file string
	repo store.Repository[T]
}

// Load seeds the table if, and only if, it is empty. It never returns an
// error: every failure is logged and reported in the Result.
func (f *fixture[T]) Load(ctx context.Context, fsys fs.FS, logger *slog.Logger) Result {
	table := f.repo.Schema().Table
	res := Result{Entity: table, File: f.file}
	log := logger.With("table", table, "file", f.file)

	fail := func(err error) Result {
		log.Error("seeding failed", "error", err)
		res.Status = StatusFailed
		res.Error = err.Error()
		return res
	}

	n, err := f.repo.Count(ctx)
	if err != nil {
		return fail(err)
	}
	if n > 0 {
		log.Info("table already populated, skipping fixture", "rows", n)
		res.Status = StatusAlreadyPopulated
		res.Count = n
		return res
	}

	if _, err := fs.Stat(fsys, f.file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error("fixture file not found")
			res.Status = StatusMissing
			res.Error = fmt.Sprintf("%s not found", f.file)
			return res
		}
		return fail(fmt.Errorf("stat %s: %w", f.file, err))
	}

	data, err := fs.ReadFile(fsys, f.file)
	if err != nil {
		return fail(fmt.Errorf("read %s: %w", f.file, err))
	}

	// encoding/json matches object keys to struct fields case-insensitively.
	var records []*T
	if err := json.Unmarshal(data, &records); err != nil {
		return fail(fmt.Errorf("parse %s: %w", f.file, err))
	}
	if len(records) == 0 {
		log.Warn("no records found in fixture")
		res.Status = StatusEmpty
		return res
	}

	if err := f.repo.CreateBatch(ctx, records); err != nil {
		return fail(fmt.Errorf("insert %s: %w", table, err))
	}

	log.Info("fixture loaded", "rows", len(records))
	res.Status = StatusSeeded
	res.Count = len(records)
	return res
}

// Loader seeds empty tables from bundled fixture files.
type Loader struct {
	fsys     fs.FS
	logger   *slog.Logger
	fixtures []Fixture
}

// New returns a Loader reading fixtures from fsys. The fixture order is fixed:
// ingredients, users, categories, products, teas. Products come after
// categories because product fixtures may reference categories by id.
func New(fsys fs.FS, logger *slog.Logger, s *store.Store) *Loader {
	return NewWithFixtures(fsys, logger,
		NewFixture("ingredients.json", s.Ingredients),
		NewFixture("users.json", s.Users),
		NewFixture("categories.json", s.Categories),
		NewFixture("products.json", s.Products),
		NewFixture("teas.json", s.Teas),
	)
}

// NewWithFixtures returns a Loader running the given fixtures in order.
func NewWithFixtures(fsys fs.FS, logger *slog.Logger, fixtures ...Fixture) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fsys: fsys, logger: logger, fixtures: fixtures}
}

// Run loads every fixture in order. A failing fixture never stops the
// fixtures after it.
func (l *Loader) Run(ctx context.Context) Report {
	report := make(Report, 0, len(l.fixtures))
	for _, f := range l.fixtures {
		report = append(report, f.Load(ctx, l.fsys, l.logger))
	}
	return report
}
