package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultAirtableURL = "https://api.airtable.com/v0"
	airtablePageSize   = 100
)

// Annotation is one row of the annotations sheet.
type Annotation struct {
	FirstName    string   `json:"First"`
	LastName     string   `json:"Last"`
	Associations []string `json:"Associations"`
	Role         string   `json:"Role"`
}

type airtableRecord struct {
	ID     string     `json:"id"`
	Fields Annotation `json:"fields"`
}

type airtablePage struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset"`
}

// AirtableOptions configures an AirtableClient.
type AirtableOptions struct {
	BaseURL           string // defaults to the public Airtable API
	BaseID            string
	APIKey            string
	Table             string
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *zerolog.Logger
}

// AirtableClient pages through an Airtable table.
type AirtableClient struct {
	baseURL    string
	baseID     string
	apiKey     string
	table      string
	httpClient *http.Client
	limiter    *rate.Limiter
	policy     *bluemonday.Policy
	logger     zerolog.Logger
}

func NewAirtableClient(opts AirtableOptions) (*AirtableClient, error) {
	if opts.BaseID == "" || opts.APIKey == "" {
		return nil, fmt.Errorf("airtable: base id and api key are required")
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultAirtableURL
	}
	table := opts.Table
	if table == "" {
		table = "Master List"
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &AirtableClient{
		baseURL:    base,
		baseID:     opts.BaseID,
		apiKey:     opts.APIKey,
		table:      table,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		policy:     bluemonday.StrictPolicy(),
		logger:     logger,
	}, nil
}

// ForEach calls fn for every record of the table, page by page, stopping at
// the first error.
func (c *AirtableClient) ForEach(ctx context.Context, fn func(Annotation) error) error {
	offset := ""
	for page := 1; ; page++ {
		body, err := c.fetch(ctx, offset)
		if err != nil {
			return fmt.Errorf("airtable page %d: %w", page, err)
		}
		c.logger.Debug().Int("page", page).Int("records", len(body.Records)).Msg("airtable page")
		for _, r := range body.Records {
			if err := fn(c.clean(r.Fields)); err != nil {
				return fmt.Errorf("airtable record %s: %w", r.ID, err)
			}
		}
		if body.Offset == "" {
			return nil
		}
		offset = body.Offset
	}
}

func (c *AirtableClient) fetch(ctx context.Context, offset string) (*airtablePage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(airtablePageSize))
	if offset != "" {
		q.Set("offset", offset)
	}
	endpoint := c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(c.table) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var page airtablePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &page, nil
}

// clean strips markup the sheet's rich-text cells may carry.
func (c *AirtableClient) clean(a Annotation) Annotation {
	out := Annotation{
		FirstName: c.text(a.FirstName),
		LastName:  c.text(a.LastName),
		Role:      c.text(a.Role),
	}
	for _, assoc := range a.Associations {
		if v := c.text(assoc); v != "" {
			out.Associations = append(out.Associations, v)
		}
	}
	return out
}

func (c *AirtableClient) text(s string) string {
	// the policy entity-encodes what it keeps; the database stores plain text
	return strings.Join(strings.Fields(html.UnescapeString(c.policy.Sanitize(s))), " ")
}
