package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tenantlens/tenantlens/internal/config"
)

const requestTimeout = 30 * time.Second

// Client performs REST calls against the Supabase PostgREST endpoint using
// the service-role credential. A Client with empty configuration can be
// constructed; every call then fails with ErrNotConfigured so the gap is
// surfaced per request rather than hidden at startup.
type Client struct {
	baseURL string
	key     string
	http    *http.Client

	// Cache fronts read paths; mutations invalidate by resource prefix.
	Cache *Cache
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.SupabaseURL, "/"),
		key:     cfg.SupabaseServiceRoleKey,
		http:    &http.Client{Timeout: requestTimeout},
		Cache:   NewCache(cfg.CacheTTL),
	}
}

func (c *Client) configured() error {
	if c.baseURL == "" || c.key == "" {
		return ErrNotConfigured
	}
	return nil
}

// Select performs a filtered GET against table and decodes the row array
// into out. query is a PostgREST query string such as
// "email=eq.a%40b.com&select=email".
func (c *Client) Select(ctx context.Context, table, query string, out any) error {
	url := c.tableURL(table, query)
	return c.do(ctx, http.MethodGet, url, nil, out)
}

// Insert POSTs payload into table. With out non-nil the inserted
// representation is requested back and decoded into it.
func (c *Client) Insert(ctx context.Context, table string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", table, err)
	}
	return c.doWith(ctx, http.MethodPost, c.tableURL(table, ""), body, out, out != nil)
}

// Update PATCHes the rows matched by query with payload.
func (c *Client) Update(ctx context.Context, table, query string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", table, err)
	}
	return c.doWith(ctx, http.MethodPatch, c.tableURL(table, query), body, nil, false)
}

// Delete removes the rows matched by query.
func (c *Client) Delete(ctx context.Context, table, query string) error {
	return c.do(ctx, http.MethodDelete, c.tableURL(table, query), nil, nil)
}

func (c *Client) tableURL(table, query string) string {
	url := c.baseURL + "/rest/v1/" + table
	if query != "" {
		url += "?" + query
	}
	return url
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, out any) error {
	return c.doWith(ctx, method, url, body, out, false)
}

func (c *Client) doWith(ctx context.Context, method, url string, body []byte, out any, wantRepresentation bool) error {
	if err := c.configured(); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build supabase request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	if wantRepresentation {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &StorageError{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &StorageError{Status: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StorageError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	return nil
}
