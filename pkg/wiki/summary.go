package wiki

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Summary is the normalized extract of an encyclopedia page.
type Summary struct {
	Text  string
	Title string
	URL   string
	Thumb string
}

// SummaryBySearch finds the best-matching page title for query on the given
// source and fetches its summary. Returns nil when the search yields no
// title, the fetch fails, or the extract is empty after trimming.
func (c *Client) SummaryBySearch(ctx context.Context, source Source, query string) *Summary {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	cacheKey := fmt.Sprintf("summary:%s:%s", source, strings.ToLower(query))
	if val, ok := c.cache.Get(cacheKey); ok {
		return val.(*Summary)
	}

	title := c.firstSearchTitle(ctx, source, query)
	if title == "" {
		return nil
	}

	summary := c.fetchSummary(ctx, source, title)
	if summary == nil {
		return nil
	}

	c.cache.SetDefault(cacheKey, summary)
	return summary
}

// firstSearchTitle runs a prefix search and returns the first candidate
// title, or "" when nothing matches.
func (c *Client) firstSearchTitle(ctx context.Context, source Source, query string) string {
	apiBase, _ := c.bases(source)

	params := url.Values{}
	params.Add("action", "opensearch")
	params.Add("search", query)
	params.Add("limit", "1")
	params.Add("format", "json")

	// opensearch replies with a positional array: [term, titles, descriptions, urls]
	var result []interface{}
	if err := c.getJSON(ctx, apiBase+"?"+params.Encode(), &result); err != nil {
		return ""
	}
	if len(result) < 2 {
		return ""
	}
	titles, ok := result[1].([]interface{})
	if !ok || len(titles) == 0 {
		return ""
	}
	title, _ := titles[0].(string)
	return strings.TrimSpace(title)
}

// fetchSummary fetches the REST summary for a canonical title.
func (c *Client) fetchSummary(ctx context.Context, source Source, title string) *Summary {
	_, restBase := c.bases(source)

	var result struct {
		Title   string `json:"title"`
		Extract string `json:"extract"`
		Thumb   struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}

	endpoint := restBase + "/page/summary/" + url.PathEscape(title)
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil
	}

	text := strings.TrimSpace(result.Extract)
	if text == "" {
		return nil
	}

	return &Summary{
		Text:  text,
		Title: result.Title,
		URL:   result.ContentURLs.Desktop.Page,
		Thumb: result.Thumb.Source,
	}
}
