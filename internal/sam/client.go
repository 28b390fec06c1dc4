// Package sam provides the SAM.gov opportunities search client and the
// concurrent multi-code fetcher feeding the report pipeline.
package sam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tepnology/sam-report/internal/config"
	"github.com/tepnology/sam-report/internal/pkg/httpretry"
)

// Client is a SAM.gov opportunities search API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpretry.HTTPDoer
}

// NewClient creates a new search client. GETs are idempotent, so they ride
// the shared retry client for transient transport failures.
func NewClient(cfg config.SAMConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: cfg.Timeout(),
		}, 2),
	}
}

// SearchQuery holds the per-request search filters.
type SearchQuery struct {
	PostedFrom time.Time
	PostedTo   time.Time
	Status     string
	Limit      int
	NCode      string
}

// StatusError is a non-2xx response from the search API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sam api status %d: %s", e.StatusCode, e.Body)
}

// Search issues one opportunities search request and decodes the envelope.
func (c *Client) Search(ctx context.Context, query SearchQuery) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("postedFrom", FormatDate(query.PostedFrom))
	params.Set("postedTo", FormatDate(query.PostedTo))
	params.Set("status", query.Status)
	params.Set("limit", strconv.Itoa(query.Limit))
	params.Set("ncode", query.NCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &response, nil
}
