package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"notion-intel/internal/contextutil"
)

const (
	// DefaultBaseURL is the public Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com/v1"
	// DefaultVersion is the Notion-Version header sent with every request.
	DefaultVersion = "2022-06-28"
	// PageSize is the page size requested from paginated endpoints (API maximum).
	PageSize = 100
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: bad status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client is a minimal read-only Notion API client.
// All requests share one rate limiter, so a Client may be used from several goroutines.
type Client struct {
	baseURL    string
	apiKey     string
	version    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client. requestsPerSecond <= 0 disables pacing.
func NewClient(baseURL, apiKey, version string, requestsPerSecond float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		version: version,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: limiter,
	}
}

// GetPage retrieves a page object.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, "get page", http.MethodGet, "/pages/"+url.PathEscape(pageID), nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetChildren lists one page of the children of a block or page.
// An empty cursor requests the first page.
func (c *Client) GetChildren(ctx context.Context, blockID, cursor string) (*ChildrenPage, error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(PageSize))
	if cursor != "" {
		query.Set("start_cursor", cursor)
	}

	var page ChildrenPage
	if err := c.do(ctx, "get block children", http.MethodGet, "/blocks/"+url.PathEscape(blockID)+"/children", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// QueryDatabase lists one page of the pages in a database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, cursor string) (*QueryPage, error) {
	body := map[string]any{"page_size": PageSize}
	if cursor != "" {
		body["start_cursor"] = cursor
	}

	var page QueryPage
	if err := c.do(ctx, "query database", http.MethodPost, "/databases/"+url.PathEscape(databaseID)+"/query", nil, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any, out any) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to send request: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.DebugContext(ctx, "notion request failed", "op", op, "status", resp.StatusCode)
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
