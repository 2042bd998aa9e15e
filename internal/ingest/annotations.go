package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

// AnnotationStore writes annotation rows: the individual, its associations
// and the links between them.
type AnnotationStore struct {
	sql    infra.SQLExecutor
	logger zerolog.Logger
}

func NewAnnotationStore(sql infra.SQLExecutor, logger zerolog.Logger) *AnnotationStore {
	return &AnnotationStore{sql: sql, logger: logger}
}

// Save upserts a. Rows without a first or last name are skipped.
func (s *AnnotationStore) Save(ctx context.Context, a Annotation) error {
	if a.FirstName == "" || a.LastName == "" {
		s.logger.Warn().Str("first", a.FirstName).Str("last", a.LastName).Msg("skipping annotation without full name")
		return nil
	}
	individualID, err := s.upsertIndividual(ctx, a)
	if err != nil {
		return fmt.Errorf("upsert individual: %w", err)
	}
	for _, description := range a.Associations {
		var associationID string
		if err := s.sql.QueryRow(ctx, sqlinline.QUpsertAssociation, description).Scan(&associationID); err != nil {
			return fmt.Errorf("upsert association %q: %w", description, err)
		}
		if _, err := s.sql.Exec(ctx, sqlinline.QLinkIndividualAssociation, individualID, associationID); err != nil {
			return fmt.Errorf("link association %q: %w", description, err)
		}
	}
	return nil
}

func (s *AnnotationStore) upsertIndividual(ctx context.Context, a Annotation) (string, error) {
	var id string
	err := s.sql.QueryRow(ctx, sqlinline.QSelectIndividualByName, a.FirstName, a.LastName).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	err = s.sql.QueryRow(ctx, sqlinline.QInsertIndividual,
		a.FirstName, a.LastName, CFBName(a.FirstName, a.LastName), a.Role,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	s.logger.Debug().Str("individual_id", id).Str("name", a.FirstName+" "+a.LastName).Msg("individual created")
	return id, nil
}
