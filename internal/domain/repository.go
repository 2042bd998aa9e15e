package domain

import "context"

// IndividualRepository reads individuals and their associations.
type IndividualRepository interface {
	Get(ctx context.Context, id string) (*Individual, error)
	Search(ctx context.Context, query string, limit int) ([]IndividualName, error)
	ListByCategory(ctx context.Context, categoryID string) ([]IndividualName, error)
	ListByAssociation(ctx context.Context, associationID string) ([]IndividualName, error)
}

// ContributionRepository reads contributions for one individual.
type ContributionRepository interface {
	Received(ctx context.Context, individualID string) ([]Contribution, error)
	Given(ctx context.Context, individualID string) ([]Contribution, error)
}

// CategoryRepository reads categories and the associations filed under them.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Associations(ctx context.Context, categoryID string) ([]Association, error)
}
