package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRequestIDPropagatesHeader(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "rid-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if seen != "rid-123" || rr.Header().Get(RequestIDHeader) != "rid-123" {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rr.Header().Get(RequestIDHeader))
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "rid-123" {
		t.Fatalf("expected generated request id, got %q", seen)
	}
}

func TestLoggerWritesStatusAndCountry(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	lookup := func(ip string) (string, error) {
		if ip == "203.0.113.1" {
			return "US", nil
		}
		return "", nil
	}
	handler := RequestID(Logger(logger, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	req := httptest.NewRequest(http.MethodPost, "/get-individual", nil)
	req.RemoteAddr = "203.0.113.1:5555"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["status"] != float64(404) || line["country"] != "US" || line["path"] != "/get-individual" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if line["request_id"] == "" {
		t.Fatalf("missing request id in %v", line)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/search-individuals", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d, want 204", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("missing allow-origin header")
	}

	req = httptest.NewRequest(http.MethodPost, "/search-individuals", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected allow-origin for foreign origin")
	}
}

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "api")

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/individual/{id}", func(w http.ResponseWriter, r *http.Request) {})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/individual/"+id, nil))
	}

	expected := `
# HELP redstring_api_http_requests_total Total number of HTTP requests.
# TYPE redstring_api_http_requests_total counter
redstring_api_http_requests_total{method="GET",route="/individual/{id}",status="200"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "redstring_api_http_requests_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestRequestIDStoresClientIP(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientIPFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "192.0.2.7" {
		t.Fatalf("expected remote host in context, got %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ForwardedForHeader, "10.0.0.3, 192.0.2.1")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "10.0.0.3" {
		t.Fatalf("expected forwarded address in context, got %q", seen)
	}
}
