package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

const stagingTable = "contributions_staging"

var stagingColumns = []string{
	"refno", "amount", "date", "contributor_name", "recipient_name", "recipient_id",
	"cfb_recipient_id", "election", "office_cd", "can_class", "committee", "filing",
	"schedule", "c_code", "borough", "city", "state", "zip", "occupation", "employer_name",
}

// ContributionLoader bulk-loads CFB records. Rows are copied into a
// transaction-scoped staging table and merged into contributions; rows whose
// refno already exists are left untouched.
type ContributionLoader struct {
	DB     *sql.DB
	Logger zerolog.Logger
}

func NewContributionLoader(db *sql.DB, logger zerolog.Logger) *ContributionLoader {
	return &ContributionLoader{DB: db, Logger: logger}
}

// Load writes records in one transaction and reports how many were new.
func (l *ContributionLoader) Load(ctx context.Context, records []Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	start := time.Now()

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := l.exec(ctx, tx, sqlinline.QCreateContributionStaging); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(stagingTable, stagingColumns...))
	if err != nil {
		return 0, fmt.Errorf("prepare copy: %w", err)
	}
	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.RefNo, r.Amount, r.Date, r.ContributorName, r.RecipientName, r.RecipientID,
			r.CFBRecipientID, r.Election, r.OfficeCD, r.CanClass, r.Committee, r.Filing,
			r.Schedule, r.CCode, r.Borough, r.City, r.State, r.ZIP, r.Occupation, r.EmployerName,
		)
		if err != nil {
			_ = stmt.Close()
			return 0, fmt.Errorf("copy refno %s: %w", r.RefNo, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return 0, fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("close copy: %w", err)
	}

	marker, merge, err := infra.SplitMarker(sqlinline.QMergeContributionStaging)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, merge)
	if err != nil {
		l.Logger.Error().Err(err).Str("sql", marker).Msg("merge failed")
		return 0, fmt.Errorf("merge contributions: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	l.Logger.Info().
		Int("staged", len(records)).
		Int64("inserted", inserted).
		Dur("took", time.Since(start)).
		Msg("contributions loaded")
	return inserted, nil
}

func (l *ContributionLoader) exec(ctx context.Context, tx *sql.Tx, query string) error {
	marker, stmt, err := infra.SplitMarker(query)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		l.Logger.Error().Err(err).Str("sql", marker).Msg("exec failed")
		return fmt.Errorf("exec %s: %w", marker, err)
	}
	return nil
}
