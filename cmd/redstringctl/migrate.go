package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  runMigrateCmd,
	}
}

func runMigrateCmd(cmd *cobra.Command, _ []string) error {
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

	// the schema is a multi-statement script, so it bypasses SQLRunner
	if _, err := pool.Exec(ctx, sqlinline.Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	e.logger.Info().Msg("schema applied")
	return nil
}
