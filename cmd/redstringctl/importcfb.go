package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"redstring/internal/infra"
	"redstring/internal/ingest"
)

// NewImportCFBCmd creates the import-cfb command.
func NewImportCFBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-cfb <export.csv>",
		Short: "Import a Campaign Finance Board contribution export",
		Long: `Import reads a CFB contribution export (CSV with a header row), links each
recipient to an individual by CFB name and inserts contributions whose
reference number is not yet in the database.

Recipient names that match no individual are written to the unmatched file.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCFBCmd,
	}

	cmd.Flags().StringP("unmatched", "u", "unmatched_names.txt", "File that receives unmatched recipient names")
	cmd.Flags().Int("batch", 5000, "Rows per load transaction")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")

	return cmd
}

func runImportCFBCmd(cmd *cobra.Command, args []string) error {
	unmatchedPath, err := cmd.Flags().GetString("unmatched")
	if err != nil {
		return err
	}
	batch, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}
	noProgress, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return err
	}

	e, err := loadEnv(cmd, infra.RequireDatabase)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	pool, err := e.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	recipients, err := ingest.LoadNameIndex(ctx, infra.NewSQLRunner(pool, e.logger))
	if err != nil {
		return err
	}
	e.logger.Info().Int("names", recipients.Len()).Msg("recipient index loaded")

	db, err := sql.Open("postgres", e.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var src io.Reader = f
	if !noProgress {
		if info, err := f.Stat(); err == nil {
			bar := progressbar.DefaultBytes(info.Size(), "importing "+info.Name())
			defer func() { _ = bar.Finish() }()
			src = io.TeeReader(f, bar)
		}
	}

	imp := &ingest.CFBImport{
		Loader:     ingest.NewContributionLoader(db, e.logger),
		Recipients: recipients,
		Logger:     e.logger,
		BatchSize:  batch,
	}
	report, err := imp.Run(ctx, src)
	if err != nil {
		return err
	}
	if err := ingest.WriteUnmatched(unmatchedPath, report.Unmatched); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d rows, %d new contributions, %d unmatched recipients (%s)\n",
		report.Rows, report.Inserted, len(report.Unmatched), unmatchedPath)
	return nil
}
