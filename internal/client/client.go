// Package client calls the redstring JSON API. Every call goes through one
// configured base URL.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"redstring/internal/domain"
	"redstring/internal/middleware"
)

const (
	EndpointSearchIndividuals      = "/search-individuals"
	EndpointGetIndividual          = "/get-individual"
	EndpointContributionsReceived  = "/individual-contributions-received"
	EndpointContributionsGiven     = "/individual-contributions-given"
	EndpointCategories             = "/categories"
	EndpointIndividualsByCategory  = "/individual-categories"
	EndpointCategoryAssociations   = "/category-associations"
	EndpointIndividualsAssociation = "/individual-associations"
)

// ErrMissingBaseURL indicates that the client was configured without an API host.
var ErrMissingBaseURL = errors.New("client: base url is required")

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	Endpoint string
	Status   int
	Kind     string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: %s: status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("client: %s: status %d", e.Endpoint, e.Status)
}

// Unwrap lets callers match domain.ErrNotFound and domain.ErrUpstream.
func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrUpstream
}

// Options configures the API client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the redstring API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New constructs a client with sane defaults and injected dependencies.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, ErrMissingBaseURL
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: invalid base url %q", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{baseURL: base, httpClient: httpClient, logger: logger}, nil
}

// BaseURL returns the configured API host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SearchIndividuals(ctx context.Context, query string) ([]domain.IndividualName, error) {
	var out []domain.IndividualName
	err := c.post(ctx, EndpointSearchIndividuals, map[string]string{"query": query}, &out)
	return out, err
}

func (c *Client) GetIndividual(ctx context.Context, id string) (*domain.Individual, error) {
	var out domain.Individual
	if err := c.post(ctx, EndpointGetIndividual, map[string]string{"id": id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ContributionsReceived(ctx context.Context, id string) ([]domain.Contribution, error) {
	var out []domain.Contribution
	err := c.post(ctx, EndpointContributionsReceived, map[string]string{"id": id}, &out)
	return out, err
}

func (c *Client) ContributionsGiven(ctx context.Context, id string) ([]domain.Contribution, error) {
	var out []domain.Contribution
	err := c.post(ctx, EndpointContributionsGiven, map[string]string{"id": id}, &out)
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.post(ctx, EndpointCategories, struct{}{}, &out)
	return out, err
}

func (c *Client) IndividualsByCategory(ctx context.Context, categoryID string) ([]domain.IndividualName, error) {
	var out []domain.IndividualName
	err := c.post(ctx, EndpointIndividualsByCategory, map[string]string{"category_id": categoryID}, &out)
	return out, err
}

func (c *Client) CategoryAssociations(ctx context.Context, categoryID string) ([]domain.Association, error) {
	var out []domain.Association
	err := c.post(ctx, EndpointCategoryAssociations, map[string]string{"category_id": categoryID}, &out)
	return out, err
}

func (c *Client) IndividualsByAssociation(ctx context.Context, associationID string) ([]domain.IndividualName, error) {
	var out []domain.IndividualName
	err := c.post(ctx, EndpointIndividualsAssociation, map[string]string{"association_id": associationID}, &out)
	return out, err
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("client: encode %s request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if rid := middleware.RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(middleware.RequestIDHeader, rid)
	}
	if ip := middleware.ClientIPFromContext(ctx); ip != "" {
		req.Header.Set(middleware.ForwardedForHeader, ip)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read %s response: %w", endpoint, err)
	}
	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Endpoint: endpoint, Status: resp.StatusCode}
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil {
			statusErr.Kind, statusErr.Message = detail.Error, detail.Message
		}
		return statusErr
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decode %s response: %w", endpoint, err)
	}
	return nil
}
