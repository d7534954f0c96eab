package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// Source selects which encyclopedia variant an adapter talks to.
type Source string

const (
	// SourceCanonical is the full-language encyclopedia.
	SourceCanonical Source = "canonical"
	// SourceSimple is the simplified-language variant, used by the
	// simplifier chain's secondary lookup.
	SourceSimple Source = "simple"
)

// Client bundles the encyclopedia adapters. Every adapter fails soft: a
// missing record, a non-2xx response or a transport error all come back as
// nil/empty, never as an error the caller has to handle.
type Client struct {
	apiBase        string // action API, canonical wiki
	restBase       string // REST API, canonical wiki
	simpleAPIBase  string
	simpleRESTBase string
	relatedBase    string // related-topic discovery endpoint
	userAgent      string

	httpClient *http.Client
	cache      *cache.Cache
}

type Config struct {
	APIBase        string
	RESTBase       string
	SimpleAPIBase  string
	SimpleRESTBase string
	RelatedBase    string
	UserAgent      string
}

func NewClient(cfg Config) *Client {
	return &Client{
		apiBase:        cfg.APIBase,
		restBase:       cfg.RESTBase,
		simpleAPIBase:  cfg.SimpleAPIBase,
		simpleRESTBase: cfg.SimpleRESTBase,
		relatedBase:    cfg.RelatedBase,
		userAgent:      cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		// Summaries and media barely change; cache with a default expiration
		// of 1 hour, purging expired items every 10 minutes.
		cache: cache.New(1*time.Hour, 10*time.Minute),
	}
}

// bases returns the action/REST base URLs for the given source.
func (c *Client) bases(source Source) (apiBase, restBase string) {
	if source == SourceSimple {
		return c.simpleAPIBase, c.simpleRESTBase
	}
	return c.apiBase, c.restBase
}

// getJSON performs a GET and decodes the JSON body into out. Non-2xx
// responses are returned as errors so adapters can convert them to absence.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
