// Package web serves the browser front end: the home page with the search
// box, the individual detail page and the category listing. All data comes
// from the JSON API through an API implementation such as *client.Client.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"redstring/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	searchSessionCookie = "rs_search"
	searchSessionHeader = "X-Search-Session"
	searchSessionTTL    = 30 * time.Minute
	categoryTimeout     = 2 * time.Second
)

// placeholderCategories are shown when the API cannot list categories.
var placeholderCategories = []string{"City Council Members", "Category #2", "Category #3"}

// API is everything the front end reads from the JSON API.
type API interface {
	Searcher
	DetailAPI
	Categories(ctx context.Context) ([]domain.Category, error)
	IndividualsByCategory(ctx context.Context, categoryID string) ([]domain.IndividualName, error)
}

// Server renders pages from API data.
type Server struct {
	api      API
	logger   zerolog.Logger
	pages    map[string]*template.Template
	sessions *SearchSessions
}

func NewServer(api API, logger zerolog.Logger) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Server{
		api:      api,
		logger:   logger,
		pages:    pages,
		sessions: NewSearchSessions(api, logger, searchSessionTTL),
	}, nil
}

type contributionSection struct {
	Title        string
	Counterparty string
	Slot         Fetch[[]domain.Contribution]
}

type partyLink struct {
	Name string
	ID   string
}

var funcs = template.FuncMap{
	"cents": formatCents,
	"date":  formatDate,
	"lower": strings.ToLower,
	"party": func(name, id string) partyLink { return partyLink{Name: name, ID: id} },
	"section": func(title, counterparty string, slot Fetch[[]domain.Contribution]) contributionSection {
		return contributionSection{Title: title, Counterparty: counterparty, Slot: slot}
	},
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "individual", "category", "notfound"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	partials, err := template.New("partials").Funcs(funcs).ParseFS(templateFS, "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	pages["partials"] = partials
	return pages, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (s *Server) render(w http.ResponseWriter, status int, page, tmpl string, data any) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, tmpl, data); err != nil {
		s.logger.Error().Err(err).Str("template", page).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) requestLogger(r *http.Request) zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return s.logger
}

type homeView struct {
	Session    string
	Categories []domain.Category
}

func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	// Each render is a new tab and gets its own search session.
	session := s.sessions.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     searchSessionCookie,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.render(w, http.StatusOK, "home", "layout", homeView{
		Session:    session,
		Categories: s.categories(r.Context()),
	})
}

func (s *Server) categories(ctx context.Context) []domain.Category {
	ctx, cancel := context.WithTimeout(ctx, categoryTimeout)
	defer cancel()
	categories, err := s.api.Categories(ctx)
	if err == nil && len(categories) > 0 {
		return categories
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("categories unavailable, showing placeholders")
	}
	out := make([]domain.Category, 0, len(placeholderCategories))
	for _, label := range placeholderCategories {
		out = append(out, domain.Category{Description: label})
	}
	return out
}

// Search answers one keystroke with the rendered results fragment. A request
// superseded by a newer one from the same session gets 204 No Content.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	session := r.Header.Get(searchSessionHeader)
	if session == "" {
		if c, err := r.Cookie(searchSessionCookie); err == nil {
			session = c.Value
		}
	}
	box := s.sessions.Box(session)
	if !box.Change(r.Context(), r.URL.Query().Get("q")) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	results := box.Results()
	if results.Failed() {
		w.Header().Set("X-Search-Error", "1")
	}
	s.render(w, http.StatusOK, "partials", "results", results.Data)
}

type individualView struct {
	Detail Detail
}

// Individual renders one profile. Each request owns its DetailPage, so a
// navigation elsewhere is a new request and cannot receive this one's data.
func (s *Server) Individual(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "individualID")
	detail := NewDetailPage(s.api, s.requestLogger(r)).Load(r.Context(), id)

	status := http.StatusOK
	if detail.Individual.Failed() && errors.Is(detail.Individual.Err, domain.ErrNotFound) {
		status = http.StatusNotFound
	}
	s.render(w, status, "individual", "layout", individualView{Detail: detail})
}

type categoryView struct {
	Category    string
	Individuals Fetch[[]domain.IndividualName]
}

func (s *Server) Category(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")
	view := categoryView{Category: "Category", Individuals: Fetch[[]domain.IndividualName]{}.Begin()}
	for _, c := range s.categories(r.Context()) {
		if c.ID == id {
			view.Category = c.Description
		}
	}
	names, err := s.api.IndividualsByCategory(r.Context(), id)
	if err != nil {
		l := s.requestLogger(r)
		l.Warn().Err(err).Str("category_id", id).Msg("category failed to load")
		view.Individuals = view.Individuals.Fail(err)
	} else {
		view.Individuals = view.Individuals.Resolve(names)
	}
	s.render(w, http.StatusOK, "category", "layout", view)
}

func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "notfound", "layout", nil)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
