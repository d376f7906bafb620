package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnwards/teasaloon/data"
	"github.com/johnwards/teasaloon/internal/config"
	"github.com/johnwards/teasaloon/internal/database"
	"github.com/johnwards/teasaloon/internal/seed"
	"github.com/johnwards/teasaloon/internal/store"
)

var (
	// Global flags
	addr       string
	dbPath     string
	fixtureDir string
	envFile    string
)

// rootCmd represents the base command. Without a subcommand it serves.
var rootCmd = &cobra.Command{
	Use:   "teasaloon",
	Short: "Tea shop REST API",
	Long: `Teasaloon serves a JSON REST API over a tea shop catalog: categories,
ingredients, products, teas, users, orders and order lines.

On startup the database schema is migrated and empty tables are filled
from JSON fixtures.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
	RunE:              runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "Listen address (overrides TEASALOON_ADDR)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite path or postgres:// URL (overrides TEASALOON_DB)")
	rootCmd.PersistentFlags().StringVar(&fixtureDir, "fixtures", "", "Fixture directory (overrides TEASALOON_FIXTURES)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
}

func loadEnv(cmd *cobra.Command, args []string) error {
	return config.LoadDotEnv(envFile)
}

// settings returns the environment configuration with command-line flags
// applied on top, and installs the configured logger as the default.
func settings() (config.Config, *slog.Logger) {
	cfg := config.Load()
	if addr != "" {
		cfg.Addr = addr
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if fixtureDir != "" {
		cfg.FixtureDir = fixtureDir
	}

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger
}

// fixtures returns the fixture source: the configured directory when set,
// the embedded defaults otherwise.
func fixtures(cfg config.Config) fs.FS {
	if cfg.FixtureDir != "" {
		return os.DirFS(cfg.FixtureDir)
	}
	return data.FS
}

// openStore opens and migrates the database.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store.New(db), nil
}

func newLoader(cfg config.Config, logger *slog.Logger, s *store.Store) *seed.Loader {
	return seed.New(fixtures(cfg), logger, s)
}
