package wiki

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"curio-be/pkg/textutil"
)

// TitleSuggestions runs a prefix-match query and a full-text query
// concurrently and merges them, prefix matches first. The merged list is
// trimmed, deduped case-insensitively and capped at max.
func (c *Client) TitleSuggestions(ctx context.Context, term string, max int) []string {
	term = strings.TrimSpace(term)
	if term == "" || max <= 0 {
		return nil
	}

	cacheKey := fmt.Sprintf("suggest:%s:%d", strings.ToLower(term), max)
	if val, ok := c.cache.Get(cacheKey); ok {
		return val.([]string)
	}

	var prefix, fulltext []string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		prefix = c.prefixTitles(ctx, term, max)
	}()
	go func() {
		defer wg.Done()
		fulltext = c.fulltextTitles(ctx, term, max)
	}()
	wg.Wait()

	merged := append(prefix, fulltext...)
	merged = textutil.Truncate(textutil.DedupStrings(merged), max)

	c.cache.SetDefault(cacheKey, merged)
	return merged
}

func (c *Client) prefixTitles(ctx context.Context, term string, max int) []string {
	params := url.Values{}
	params.Add("action", "opensearch")
	params.Add("search", term)
	params.Add("limit", strconv.Itoa(max))
	params.Add("format", "json")

	var result []interface{}
	if err := c.getJSON(ctx, c.apiBase+"?"+params.Encode(), &result); err != nil {
		return nil
	}
	if len(result) < 2 {
		return nil
	}
	raw, ok := result[1].([]interface{})
	if !ok {
		return nil
	}

	titles := make([]string, 0, len(raw))
	for _, r := range raw {
		if title, ok := r.(string); ok {
			titles = append(titles, title)
		}
	}
	return titles
}

func (c *Client) fulltextTitles(ctx context.Context, term string, max int) []string {
	params := url.Values{}
	params.Add("action", "query")
	params.Add("list", "search")
	params.Add("srsearch", term)
	params.Add("srlimit", strconv.Itoa(max))
	params.Add("format", "json")

	var result struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, c.apiBase+"?"+params.Encode(), &result); err != nil {
		return nil
	}

	titles := make([]string, 0, len(result.Query.Search))
	for _, s := range result.Query.Search {
		titles = append(titles, s.Title)
	}
	return titles
}
