package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"redstring/internal/domain"
	"redstring/internal/http/handlers"
)

type stubIndividuals struct{}

func (stubIndividuals) Get(_ context.Context, id string) (*domain.Individual, error) {
	return &domain.Individual{ID: id, FirstName: "Jane", LastName: "Smith"}, nil
}

func (stubIndividuals) Search(context.Context, string, int) ([]domain.IndividualName, error) {
	return []domain.IndividualName{{ID: "1", FirstName: "Jane", LastName: "Smith"}}, nil
}

func (stubIndividuals) ListByCategory(context.Context, string) ([]domain.IndividualName, error) {
	return []domain.IndividualName{}, nil
}

func (stubIndividuals) ListByAssociation(context.Context, string) ([]domain.IndividualName, error) {
	return []domain.IndividualName{}, nil
}

type stubContributions struct{}

func (stubContributions) Received(context.Context, string) ([]domain.Contribution, error) {
	return []domain.Contribution{}, nil
}

func (stubContributions) Given(context.Context, string) ([]domain.Contribution, error) {
	return []domain.Contribution{}, nil
}

type stubCategories struct{}

func (stubCategories) List(context.Context) ([]domain.Category, error) {
	return []domain.Category{}, nil
}

func (stubCategories) Associations(context.Context, string) ([]domain.Association, error) {
	return []domain.Association{}, nil
}

func newTestRouter() http.Handler {
	app := handlers.NewApp(stubIndividuals{}, stubContributions{}, stubCategories{}, zerolog.Nop())
	return NewRouter(app, Options{
		Logger:          zerolog.Nop(),
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitPerMin: 100,
		Registry:        prometheus.NewRegistry(),
	})
}

func TestRouterServesAPIEndpoints(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/v1/healthz", "", http.StatusOK},
		{http.MethodPost, "/search-individuals", `{"query":"Smith"}`, http.StatusOK},
		{http.MethodPost, "/get-individual", `{"id":"1"}`, http.StatusOK},
		{http.MethodPost, "/individual-contributions-received", `{"id":"1"}`, http.StatusOK},
		{http.MethodPost, "/individual-contributions-given", `{"id":"1"}`, http.StatusOK},
		{http.MethodPost, "/categories", "", http.StatusOK},
		{http.MethodPost, "/individual-categories", `{"category_id":"k1"}`, http.StatusOK},
		{http.MethodPost, "/category-associations", `{"category_id":"k1"}`, http.StatusOK},
		{http.MethodPost, "/individual-associations", `{"association_id":"a1"}`, http.StatusOK},
		{http.MethodGet, "/get-individual", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/unknown", "{}", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tc.want, rr.Body.String())
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Fatalf("missing X-Request-ID header")
			}
		})
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	router := newTestRouter()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `redstring_api_http_requests_total{method="GET",route="/v1/healthz",status="200"} 1`) {
		t.Fatalf("metrics body missing healthz counter:\n%s", rr.Body.String())
	}
}
