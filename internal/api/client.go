// Package api is the HTTP client for the remote colegios service. It is a
// thin CRUD proxy: the server owns persistence, sorting and filtering happen
// through request parameters, and every call carries a bounded timeout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"colegios-cli/internal/model"
)

// DefaultTimeout bounds every request so a dead server cannot hang the
// interactive loop.
const DefaultTimeout = 10 * time.Second

// DefaultBaseURL is the production server; override with --base-url or
// COLEGIOS_API_URL.
const DefaultBaseURL = "http://149.50.150.15:8020"

// ConnectionError means the server could not be reached at all. It is
// reported separately from a server-side failure so the caller can decide to
// fall back to the local store.
type ConnectionError struct {
	BaseURL string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach colegios API at %s: %v (is the server running?)", e.BaseURL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatusError means the server was reached but answered non-2xx.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("API error: status %d", e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// BaseURL returns the server this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListOptions are forwarded as query parameters; zero values are omitted.
type ListOptions struct {
	Query    string // q: matches name or province server-side
	Province string // Provincia
	SortBy   string // sort_by: one of the canonical field names
	Desc     bool   // desc
}

// Health checks the server (`GET /health`).
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List fetches records with optional filter/sort parameters.
func (c *Client) List(ctx context.Context, opt ListOptions) ([]model.School, error) {
	params := url.Values{}
	if opt.Query != "" {
		params.Set("q", opt.Query)
	}
	if opt.Province != "" {
		params.Set("Provincia", opt.Province)
	}
	if opt.SortBy != "" {
		params.Set("sort_by", opt.SortBy)
	}
	if opt.Desc {
		params.Set("desc", "true")
	}
	var out []model.School
	if err := c.do(ctx, http.MethodGet, "/colegios", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single record by its server-assigned id.
func (c *Client) Get(ctx context.Context, id int64) (model.School, error) {
	var out model.School
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/colegios/%d", id), nil, nil, &out)
	return out, err
}

// Create adds a record; the server assigns the id.
func (c *Client) Create(ctx context.Context, s model.School) (model.School, error) {
	s.ID = 0
	var out model.School
	err := c.do(ctx, http.MethodPost, "/colegios", nil, s, &out)
	return out, err
}

// Patch applies a partial update.
func (c *Client) Patch(ctx context.Context, id int64, ch model.Changes) (model.School, error) {
	var out model.School
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/colegios/%d", id), nil, ch, &out)
	return out, err
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/colegios/%d", id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// readDetail pulls a short human-readable message out of an error response,
// preferring the common {"detail": ...} shape.
func readDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(b) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(b))
}
