package web

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"redstring/internal/domain"
)

// Searcher is the slice of the API the search box needs.
type Searcher interface {
	SearchIndividuals(ctx context.Context, query string) ([]domain.IndividualName, error)
}

// SearchBox models the search input. Every Change issues exactly one request
// for the full current value; only the response to the latest Change is
// applied and older in-flight requests are cancelled.
type SearchBox struct {
	api    Searcher
	logger zerolog.Logger

	mu      sync.Mutex
	value   string
	gen     uint64
	cancel  context.CancelFunc
	results Fetch[[]domain.IndividualName]
}

func NewSearchBox(api Searcher, logger zerolog.Logger) *SearchBox {
	return &SearchBox{api: api, logger: logger}
}

// Change records value and blocks until its request settles. It reports
// false when a later Change superseded this one, in which case nothing was
// applied.
func (b *SearchBox) Change(ctx context.Context, value string) bool {
	b.mu.Lock()
	b.gen++
	token := b.gen
	if b.cancel != nil {
		b.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.value = value
	b.results = b.results.Begin()
	b.mu.Unlock()
	defer cancel()

	results, err := b.api.SearchIndividuals(ctx, value)

	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.gen {
		return false
	}
	b.cancel = nil
	if err != nil {
		ev := b.logger.Warn()
		if errors.Is(err, context.Canceled) {
			ev = b.logger.Debug()
		}
		ev.Err(err).Str("query", value).Msg("search failed")
		b.results = b.results.Fail(err)
		return true
	}
	b.results = b.results.Resolve(results)
	return true
}

// Value is the input's current text.
func (b *SearchBox) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Results returns the current result slot.
func (b *SearchBox) Results() Fetch[[]domain.IndividualName] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results
}

// maxSearchSessions bounds the number of live tabs; the least recently used
// session is evicted past it.
const maxSearchSessions = 10000

// SearchSessions keeps one SearchBox per browser tab so a newer keystroke
// cancels the upstream call of an older one. Only ids handed out by NewID
// are tracked.
type SearchSessions struct {
	api    Searcher
	logger zerolog.Logger
	ttl    time.Duration
	max    int
	now    func() time.Time

	mu    sync.Mutex
	boxes map[string]*sessionEntry
}

type sessionEntry struct {
	box      *SearchBox
	lastSeen time.Time
}

func NewSearchSessions(api Searcher, logger zerolog.Logger, ttl time.Duration) *SearchSessions {
	return &SearchSessions{
		api:    api,
		logger: logger,
		ttl:    ttl,
		max:    maxSearchSessions,
		now:    time.Now,
		boxes:  make(map[string]*sessionEntry),
	}
}

// NewID registers a fresh session and returns its identifier.
func (s *SearchSessions) NewID() string {
	id := uuid.NewString()
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)
	for len(s.boxes) >= s.max {
		s.evictOldest()
	}
	s.boxes[id] = &sessionEntry{box: NewSearchBox(s.api, s.logger), lastSeen: now}
	return id
}

// Box returns the SearchBox for id. Empty, unknown and expired ids get a
// throwaway box so clients cannot grow the table.
func (s *SearchSessions) Box(id string) *SearchBox {
	if id == "" {
		return NewSearchBox(s.api, s.logger)
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)
	entry, ok := s.boxes[id]
	if !ok {
		return NewSearchBox(s.api, s.logger)
	}
	entry.lastSeen = now
	return entry.box
}

// Len reports the number of live sessions.
func (s *SearchSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.boxes)
}

func (s *SearchSessions) sweep(now time.Time) {
	for id, entry := range s.boxes {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.boxes, id)
		}
	}
}

func (s *SearchSessions) evictOldest() {
	var (
		oldest string
		seen   time.Time
	)
	for id, entry := range s.boxes {
		if oldest == "" || entry.lastSeen.Before(seen) {
			oldest, seen = id, entry.lastSeen
		}
	}
	delete(s.boxes, oldest)
}
