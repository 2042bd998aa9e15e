package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"redstring/internal/domain"
	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

// MinSearchLength is the shortest query that reaches the database.
const MinSearchLength = 3

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// IndividualRepositoryPG implements domain.IndividualRepository on Postgres.
type IndividualRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewIndividualRepository creates a new individual repo.
func NewIndividualRepository(sql infra.SQLExecutor) *IndividualRepositoryPG {
	return &IndividualRepositoryPG{sql: sql}
}

// Get loads one individual and its associations.
func (r *IndividualRepositoryPG) Get(ctx context.Context, id string) (*domain.Individual, error) {
	var i domain.Individual
	err := r.sql.QueryRow(ctx, sqlinline.QSelectIndividualByID, id).Scan(
		&i.ID, &i.FirstName, &i.LastName, &i.ZIP, &i.UpdatedTS, &i.Role, &i.Title, &i.Twitter,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("individual %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query individual: %w", err)
	}

	rows, err := r.sql.Query(ctx, sqlinline.QListIndividualAssociations, id)
	if err != nil {
		return nil, fmt.Errorf("query individual associations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a domain.Association
		if err := rows.Scan(&a.ID, &a.Description); err != nil {
			return nil, fmt.Errorf("scan association row: %w", err)
		}
		i.Associations = append(i.Associations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read association rows: %w", err)
	}
	return &i, nil
}

// Search matches query as a case-insensitive substring of the CFB name,
// first name or last name. Queries shorter than MinSearchLength return an
// empty result without a round trip.
func (r *IndividualRepositoryPG) Search(ctx context.Context, query string, limit int) ([]domain.IndividualName, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSearchLength {
		return []domain.IndividualName{}, nil
	}
	names, err := r.listNames(ctx, sqlinline.QSearchIndividuals, likeEscaper.Replace(query), limit)
	if err != nil {
		return nil, fmt.Errorf("search individuals: %w", err)
	}
	return names, nil
}

// ListByCategory returns individuals holding any association in the category.
func (r *IndividualRepositoryPG) ListByCategory(ctx context.Context, categoryID string) ([]domain.IndividualName, error) {
	names, err := r.listNames(ctx, sqlinline.QListIndividualsByCategory, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list individuals by category: %w", err)
	}
	return names, nil
}

// ListByAssociation returns individuals linked to one association.
func (r *IndividualRepositoryPG) ListByAssociation(ctx context.Context, associationID string) ([]domain.IndividualName, error) {
	names, err := r.listNames(ctx, sqlinline.QListIndividualsByAssociation, associationID)
	if err != nil {
		return nil, fmt.Errorf("list individuals by association: %w", err)
	}
	return names, nil
}

func (r *IndividualRepositoryPG) listNames(ctx context.Context, query string, args ...any) ([]domain.IndividualName, error) {
	rows, err := r.sql.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []domain.IndividualName{}
	for rows.Next() {
		var n domain.IndividualName
		if err := rows.Scan(&n.ID, &n.FirstName, &n.LastName); err != nil {
			return nil, fmt.Errorf("scan individual name row: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read individual name rows: %w", err)
	}
	return names, nil
}

var _ domain.IndividualRepository = (*IndividualRepositoryPG)(nil)
