// Package market provides the remote price API client and the catalog
// synchronization loops.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"eft-overlay/internal/catalog"
)

const (
	// fullTimeout covers the complete catalog download; the payload runs
	// to several megabytes.
	fullTimeout = 60 * time.Second
	// liveTimeout covers a single-item fetch.
	liveTimeout = 10 * time.Second
)

// Client calls the tarkov-market REST API. The credential travels as the
// x-api-key query parameter, as the API expects.
type Client struct {
	baseURL string
	apiKey  string
	full    *http.Client
	live    *http.Client
}

// NewClient creates a client for the given API base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		full:    &http.Client{Timeout: fullTimeout},
		live:    &http.Client{Timeout: liveTimeout},
	}
}

// AllItems downloads the complete item catalog.
func (c *Client) AllItems(ctx context.Context) ([]catalog.Item, error) {
	endpoint := fmt.Sprintf("%s/items/all/download?x-api-key=%s",
		c.baseURL, url.QueryEscape(c.apiKey))

	var items []catalog.Item
	if err := c.get(ctx, c.full, endpoint, &items); err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return items, nil
}

// Item fetches the live record for one item by external id. The endpoint
// returns a zero-or-one element list; ok is false when it was empty.
func (c *Client) Item(ctx context.Context, uid string) (catalog.Item, bool, error) {
	endpoint := fmt.Sprintf("%s/item?uid=%s&x-api-key=%s",
		c.baseURL, url.QueryEscape(uid), url.QueryEscape(c.apiKey))

	var items []catalog.Item
	if err := c.get(ctx, c.live, endpoint, &items); err != nil {
		return catalog.Item{}, false, fmt.Errorf("failed to fetch item: %w", err)
	}
	if len(items) == 0 {
		return catalog.Item{}, false, nil
	}
	return items[0], true, nil
}

func (c *Client) get(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
