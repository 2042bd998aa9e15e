package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"redstring/internal/infra"
	"redstring/internal/ingest"
)

// NewSeedCategoriesCmd creates the seed-categories command.
func NewSeedCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-categories <categories.yaml>",
		Short: "Create browse categories and file associations under them",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeedCategoriesCmd,
	}
}

func runSeedCategoriesCmd(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	seed, err := ingest.ParseCategorySeed(f)
	if err != nil {
		return err
	}

	e, err := loadEnv(cmd, infra.RequireDatabase)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	pool, err := e.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	res, err := ingest.SeedCategories(ctx, infra.NewSQLRunner(pool, e.logger), seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d categories, %d associations filed\n", res.Categories, res.Associations)
	return nil
}
