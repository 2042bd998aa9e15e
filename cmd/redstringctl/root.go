package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"redstring/internal/infra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redstringctl",
		Short: "Load and maintain the redstring database",
		Long: `redstringctl applies the database schema and loads campaign-finance data:
contribution exports from the NYC Campaign Finance Board, individual
annotations from Airtable and the browse categories.

DATABASE_URL must point at the Postgres database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewImportCFBCmd())
	cmd.AddCommand(NewImportAnnotationsCmd())
	cmd.AddCommand(NewSeedCategoriesCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	infra.LoadDotEnv()
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand starts from.
type env struct {
	cfg    *infra.Config
	logger zerolog.Logger
}

func loadEnv(cmd *cobra.Command, required ...infra.Requirement) (*env, error) {
	cfg, err := infra.LoadConfig(required...)
	if err != nil {
		return nil, err
	}
	logger := infra.NewLogger(cfg.AppEnv, "redstringctl")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) pool(ctx context.Context) (*pgxpool.Pool, error) {
	return infra.NewDBPool(ctx, e.cfg)
}
