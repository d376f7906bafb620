package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnwards/teasaloon/internal/seed"
)

var (
	// Seed flags
	reset bool
)

// seedCmd loads fixtures into empty tables
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixtures into empty tables",
	Long: `Migrate the database, then load every fixture whose table is empty.
The per-fixture report is printed to stdout as JSON.

Examples:
  teasaloon seed                           # embedded fixtures
  teasaloon seed --fixtures ./fixtures     # fixtures from a directory
  teasaloon seed --reset                   # clear all tables first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := settings()
		ctx := cmd.Context()

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = s.DB.Close() }()

		if reset {
			if err := s.Truncate(ctx); err != nil {
				return fmt.Errorf("reset tables: %w", err)
			}
		}

		report := newLoader(cfg, logger, s).Run(ctx)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		for _, r := range report {
			if r.Status == seed.StatusFailed {
				return fmt.Errorf("seeding %s failed: %s", r.Entity, r.Error)
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&reset, "reset", false, "Delete all rows before seeding")
	rootCmd.AddCommand(seedCmd)
}
