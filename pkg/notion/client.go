// Package notion implements the primary record source: a client for the
// Notion database query API.
//
// The client walks the paginated query endpoint in stable database order
// and maps each page's properties onto a [timeline.Record]. Transient
// failures (network errors, 5xx responses) are retried with exponential
// backoff; authentication and not-found failures surface immediately as
// coded errors.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/talegraph/talegraph/pkg/errors"
	"github.com/talegraph/talegraph/pkg/httputil"
	"github.com/talegraph/talegraph/pkg/timeline"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"

	// apiVersion pins the Notion API revision; property wire shapes are
	// stable within a version.
	apiVersion = "2022-06-28"

	pageSize    = 100
	httpTimeout = 10 * time.Second
)

// Client provides access to a Notion timeline database.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point the
// client at a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Notion API client authenticated with the given
// integration token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: defaultBaseURL,
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll retrieves every record of the database, handling pagination
// internally. Records are returned in stable database order. There is no
// caching at this layer; the snapshot store decides what to persist.
func (c *Client) FetchAll(ctx context.Context, databaseID string) ([]timeline.Record, error) {
	var records []timeline.Record
	cursor := ""

	for {
		resp, err := c.queryPage(ctx, databaseID, cursor)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeFetch, err, "query database %s", databaseID)
		}
		for _, p := range resp.Results {
			records = append(records, toRecord(p))
		}
		if !resp.HasMore {
			return records, nil
		}
		cursor = resp.NextCursor
	}
}

// queryPage fetches one page of query results, retrying transient failures.
func (c *Client) queryPage(ctx context.Context, databaseID, cursor string) (*queryResponse, error) {
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, databaseID)
	req := queryRequest{StartCursor: cursor, PageSize: pageSize}

	var resp queryResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.post(ctx, url, req, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, url string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "request %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return apperrors.New(apperrors.ErrCodeUnauthorized, "integration token rejected (status %d)", code)
	case code == http.StatusNotFound:
		return apperrors.New(apperrors.ErrCodeNotFound, "database not found or not shared with the integration")
	case code == http.StatusTooManyRequests:
		return apperrors.New(apperrors.ErrCodeRateLimited, "rate limited by the API")
	case code >= 500:
		return &httputil.RetryableError{Err: apperrors.New(apperrors.ErrCodeNetwork, "server error: status %d", code)}
	default:
		return apperrors.New(apperrors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
