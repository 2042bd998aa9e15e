package web

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"redstring/internal/domain"
)

var errBoom = errors.New("boom")

// fakeAPI serves canned data; any of the hooks may override a call.
type fakeAPI struct {
	mu sync.Mutex

	individuals map[string]*domain.Individual
	received    map[string][]domain.Contribution
	given       map[string][]domain.Contribution
	names       []domain.IndividualName
	categories  []domain.Category

	searchFn   func(ctx context.Context, query string) ([]domain.IndividualName, error)
	receivedFn func(ctx context.Context, id string) ([]domain.Contribution, error)
	categoryFn func(ctx context.Context) ([]domain.Category, error)

	queries []string
}

func janeSmith() *fakeAPI {
	return &fakeAPI{
		individuals: map[string]*domain.Individual{
			"1": {
				ID:        "1",
				FirstName: "Jane",
				LastName:  "Smith",
				Role:      "Council Member",
				Associations: []domain.Association{
					{ID: "10", Description: "PAC X"},
				},
			},
			"2": {ID: "2", FirstName: "John", LastName: "Doe", Role: "Lobbyist"},
		},
		received: map[string][]domain.Contribution{
			"1": {{
				ID:              "c1",
				Amount:          25000,
				Date:            time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
				ContributorName: "Doe, John",
				ContributorID:   "2",
				RecipientName:   "Smith, Jane",
				RecipientID:     "1",
			}},
		},
		given: map[string][]domain.Contribution{
			"2": {{
				ID:              "c1",
				Amount:          25000,
				ContributorName: "Doe, John",
				ContributorID:   "2",
				RecipientName:   "Smith, Jane",
				RecipientID:     "1",
			}},
		},
		names: []domain.IndividualName{{ID: "1", FirstName: "Jane", LastName: "Smith"}},
	}
}

func (f *fakeAPI) SearchIndividuals(ctx context.Context, query string) ([]domain.IndividualName, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	fn := f.searchFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, query)
	}
	return f.names, nil
}

func (f *fakeAPI) GetIndividual(_ context.Context, id string) (*domain.Individual, error) {
	i, ok := f.individuals[id]
	if !ok {
		return nil, fmt.Errorf("get individual %q: %w", id, domain.ErrNotFound)
	}
	return i, nil
}

func (f *fakeAPI) ContributionsReceived(ctx context.Context, id string) ([]domain.Contribution, error) {
	if f.receivedFn != nil {
		return f.receivedFn(ctx, id)
	}
	return f.received[id], nil
}

func (f *fakeAPI) ContributionsGiven(_ context.Context, id string) ([]domain.Contribution, error) {
	return f.given[id], nil
}

func (f *fakeAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	if f.categoryFn != nil {
		return f.categoryFn(ctx)
	}
	return f.categories, nil
}

func (f *fakeAPI) IndividualsByCategory(_ context.Context, categoryID string) ([]domain.IndividualName, error) {
	if categoryID == "missing" {
		return nil, errBoom
	}
	return f.names, nil
}

func (f *fakeAPI) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}
