package repo

import (
	"context"
	"fmt"

	"redstring/internal/domain"
	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

// ContributionRepositoryPG implements domain.ContributionRepository on Postgres.
type ContributionRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewContributionRepository creates a new contribution repo.
func NewContributionRepository(sql infra.SQLExecutor) *ContributionRepositoryPG {
	return &ContributionRepositoryPG{sql: sql}
}

// Received lists contributions where the individual is the recipient.
func (r *ContributionRepositoryPG) Received(ctx context.Context, individualID string) ([]domain.Contribution, error) {
	res, err := r.list(ctx, sqlinline.QListContributionsReceived, individualID)
	if err != nil {
		return nil, fmt.Errorf("contributions received: %w", err)
	}
	return res, nil
}

// Given lists contributions where the individual is the contributor.
func (r *ContributionRepositoryPG) Given(ctx context.Context, individualID string) ([]domain.Contribution, error) {
	res, err := r.list(ctx, sqlinline.QListContributionsGiven, individualID)
	if err != nil {
		return nil, fmt.Errorf("contributions given: %w", err)
	}
	return res, nil
}

func (r *ContributionRepositoryPG) list(ctx context.Context, query, individualID string) ([]domain.Contribution, error) {
	rows, err := r.sql.Query(ctx, query, individualID)
	if err != nil {
		return nil, fmt.Errorf("query contributions: %w", err)
	}
	defer rows.Close()

	res := []domain.Contribution{}
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.ID, &c.Amount, &c.Date, &c.ContributorName, &c.ContributorID, &c.RecipientName, &c.RecipientID); err != nil {
			return nil, fmt.Errorf("scan contribution row: %w", err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read contribution rows: %w", err)
	}
	return res, nil
}

var _ domain.ContributionRepository = (*ContributionRepositoryPG)(nil)
