package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redstring/internal/infra"
	"redstring/internal/ingest"
)

// NewImportAnnotationsCmd creates the import-annotations command.
func NewImportAnnotationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-annotations",
		Short: "Import individual annotations from Airtable",
		Long: `Import pages through the Airtable annotations table and upserts each
individual with its role and associations.

Requires AIRTABLE_BASE_ID and AIRTABLE_API_KEY; AIRTABLE_TABLE defaults to
"Master List".`,
		Args: cobra.NoArgs,
		RunE: runImportAnnotationsCmd,
	}

	cmd.Flags().String("table", "", "Airtable table name (overrides AIRTABLE_TABLE)")

	return cmd
}

func runImportAnnotationsCmd(cmd *cobra.Command, _ []string) error {
	table, err := cmd.Flags().GetString("table")
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd, infra.RequireDatabase, infra.RequireAirtable)
	if err != nil {
		return err
	}
	if table == "" {
		table = e.cfg.AirtableTable
	}
	ctx := cmd.Context()

	airtable, err := ingest.NewAirtableClient(ingest.AirtableOptions{
		BaseID:            e.cfg.AirtableBaseID,
		APIKey:            e.cfg.AirtableAPIKey,
		Table:             table,
		RequestsPerSecond: e.cfg.AirtableRPS,
		Logger:            &e.logger,
	})
	if err != nil {
		return err
	}

	pool, err := e.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := ingest.NewAnnotationStore(infra.NewSQLRunner(pool, e.logger), e.logger)
	saved := 0
	err = airtable.ForEach(ctx, func(a ingest.Annotation) error {
		if err := store.Save(ctx, a); err != nil {
			return err
		}
		saved++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d annotations imported from %q\n", saved, table)
	return nil
}
