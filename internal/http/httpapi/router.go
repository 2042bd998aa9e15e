package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"redstring/internal/http/handlers"
	"redstring/internal/middleware"
)

// Options configures the cross-cutting middleware of the API router.
type Options struct {
	Logger          zerolog.Logger
	CountryLookup   middleware.CountryLookup
	AllowedOrigins  []string
	RateLimitPerMin int
	Registry        *prometheus.Registry
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger, opts.CountryLookup),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.Registry != nil {
		r.Use(middleware.NewMetrics(opts.Registry, "api").Handler)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))

		r.Post("/search-individuals", app.SearchIndividuals)
		r.Post("/get-individual", app.GetIndividual)
		r.Post("/individual-contributions-received", app.ContributionsReceived)
		r.Post("/individual-contributions-given", app.ContributionsGiven)

		r.Post("/categories", app.ListCategories)
		r.Get("/categories", app.ListCategories)
		r.Post("/individual-categories", app.IndividualsByCategory)
		r.Post("/category-associations", app.CategoryAssociations)
		r.Post("/individual-associations", app.IndividualsByAssociation)
	})

	return r
}
