package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"redstring/internal/domain"
)

type fakeIndividuals struct {
	individuals map[string]*domain.Individual
	names       []domain.IndividualName
	err         error

	lastQuery string
	lastLimit int
	lastID    string
}

func (f *fakeIndividuals) Get(_ context.Context, id string) (*domain.Individual, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	i, ok := f.individuals[id]
	if !ok {
		return nil, fmt.Errorf("individual %q: %w", id, domain.ErrNotFound)
	}
	return i, nil
}

func (f *fakeIndividuals) Search(_ context.Context, query string, limit int) ([]domain.IndividualName, error) {
	f.lastQuery, f.lastLimit = query, limit
	if f.err != nil {
		return nil, f.err
	}
	if len(query) < 3 {
		return []domain.IndividualName{}, nil
	}
	return f.names, nil
}

func (f *fakeIndividuals) ListByCategory(_ context.Context, categoryID string) ([]domain.IndividualName, error) {
	f.lastID = categoryID
	return f.names, f.err
}

func (f *fakeIndividuals) ListByAssociation(_ context.Context, associationID string) ([]domain.IndividualName, error) {
	f.lastID = associationID
	return f.names, f.err
}

type fakeContributions struct {
	received []domain.Contribution
	given    []domain.Contribution
	err      error
	lastID   string
}

func (f *fakeContributions) Received(_ context.Context, id string) ([]domain.Contribution, error) {
	f.lastID = id
	return f.received, f.err
}

func (f *fakeContributions) Given(_ context.Context, id string) ([]domain.Contribution, error) {
	f.lastID = id
	return f.given, f.err
}

type fakeCategories struct {
	categories   []domain.Category
	associations []domain.Association
	err          error
}

func (f *fakeCategories) List(context.Context) ([]domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeCategories) Associations(context.Context, string) ([]domain.Association, error) {
	return f.associations, f.err
}

func newTestApp(ind *fakeIndividuals, con *fakeContributions, cat *fakeCategories) *App {
	if ind == nil {
		ind = &fakeIndividuals{}
	}
	if con == nil {
		con = &fakeContributions{}
	}
	if cat == nil {
		cat = &fakeCategories{}
	}
	return NewApp(ind, con, cat, zerolog.Nop())
}
