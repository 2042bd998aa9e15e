package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"redstring/internal/middleware"
)

// RouterOptions configures the cross-cutting middleware of the web router.
type RouterOptions struct {
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
	Registry        *prometheus.Registry
}

func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(s.logger, opts.CountryLookup),
		chimw.Recoverer,
	)
	if opts.Registry != nil {
		r.Use(middleware.NewMetrics(opts.Registry, "web").Handler)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", s.Health)
	r.Handle("/static/*", staticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		r.Get("/", s.Home)
		r.Get("/search", s.Search)
		r.Get("/individual/{individualID}", s.Individual)
		r.Get("/category/{categoryID}", s.Category)
	})
	r.NotFound(s.NotFound)

	return r
}
