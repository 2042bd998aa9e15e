package repo

import (
	"context"
	"fmt"

	"redstring/internal/domain"
	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

// CategoryRepositoryPG implements domain.CategoryRepository on Postgres.
type CategoryRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCategoryRepository creates a new category repo.
func NewCategoryRepository(sql infra.SQLExecutor) *CategoryRepositoryPG {
	return &CategoryRepositoryPG{sql: sql}
}

// List returns every category ordered by description.
func (r *CategoryRepositoryPG) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCategories)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read category rows: %w", err)
	}
	return categories, nil
}

// Associations lists associations filed under the category.
func (r *CategoryRepositoryPG) Associations(ctx context.Context, categoryID string) ([]domain.Association, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCategoryAssociations, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query associations for category: %w", err)
	}
	defer rows.Close()

	associations := []domain.Association{}
	for rows.Next() {
		var a domain.Association
		if err := rows.Scan(&a.ID, &a.Description); err != nil {
			return nil, fmt.Errorf("scan association row: %w", err)
		}
		associations = append(associations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read association rows: %w", err)
	}
	return associations, nil
}

var _ domain.CategoryRepository = (*CategoryRepositoryPG)(nil)
