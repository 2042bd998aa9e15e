package web

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"redstring/internal/domain"
)

// DetailAPI is the slice of the API the individual page needs.
type DetailAPI interface {
	GetIndividual(ctx context.Context, id string) (*domain.Individual, error)
	ContributionsReceived(ctx context.Context, id string) ([]domain.Contribution, error)
	ContributionsGiven(ctx context.Context, id string) ([]domain.Contribution, error)
}

// Detail is everything the individual page renders. Each slot settles on
// its own.
type Detail struct {
	ID         string
	Individual Fetch[*domain.Individual]
	Received   Fetch[[]domain.Contribution]
	Given      Fetch[[]domain.Contribution]
}

// DetailPage loads the three sections of the individual page. Loading a new
// id resets every slot first and discards late responses for the old id.
type DetailPage struct {
	api    DetailAPI
	logger zerolog.Logger

	mu      sync.Mutex
	gen     uint64
	current Detail
}

func NewDetailPage(api DetailAPI, logger zerolog.Logger) *DetailPage {
	return &DetailPage{api: api, logger: logger}
}

// Load fetches profile, contributions received and contributions given in
// parallel and returns the page state once all three have settled. A failed
// section does not affect the others.
func (p *DetailPage) Load(ctx context.Context, id string) Detail {
	p.mu.Lock()
	p.gen++
	token := p.gen
	p.current = Detail{
		ID:         id,
		Individual: Fetch[*domain.Individual]{}.Begin(),
		Received:   Fetch[[]domain.Contribution]{}.Begin(),
		Given:      Fetch[[]domain.Contribution]{}.Begin(),
	}
	p.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		individual, err := p.api.GetIndividual(ctx, id)
		p.apply(token, "get individual", err, func(d *Detail) {
			if err != nil {
				d.Individual = d.Individual.Fail(err)
				return
			}
			d.Individual = d.Individual.Resolve(individual)
		})
		return nil
	})
	g.Go(func() error {
		received, err := p.api.ContributionsReceived(ctx, id)
		p.apply(token, "contributions received", err, func(d *Detail) {
			if err != nil {
				d.Received = d.Received.Fail(err)
				return
			}
			d.Received = d.Received.Resolve(received)
		})
		return nil
	})
	g.Go(func() error {
		given, err := p.api.ContributionsGiven(ctx, id)
		p.apply(token, "contributions given", err, func(d *Detail) {
			if err != nil {
				d.Given = d.Given.Fail(err)
				return
			}
			d.Given = d.Given.Resolve(given)
		})
		return nil
	})
	_ = g.Wait()

	return p.Snapshot()
}

// Snapshot returns a copy of the current page state.
func (p *DetailPage) Snapshot() Detail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *DetailPage) apply(token uint64, op string, err error, update func(*Detail)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if token != p.gen {
		return
	}
	if err != nil {
		p.logger.Warn().Err(err).Str("op", op).Str("individual_id", p.current.ID).Msg("section failed to load")
	}
	update(&p.current)
}
