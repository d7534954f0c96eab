package rewriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Rewriter is the contract of the remote text-rewriting endpoint; text in,
// simplified text out.
type Rewriter interface {
	Rewrite(ctx context.Context, text string) (string, error)
}

// Client talks to the external ELI5 rewriting endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ Rewriter = &Client{}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type rewriteRequest struct {
	Text string `json:"text"`
}

// rewriteResponse tolerates the endpoint returning the rewritten text under
// any of several plausible field names.
type rewriteResponse struct {
	Eli5   string `json:"eli5"`
	Text   string `json:"text"`
	Result string `json:"result"`
	Output string `json:"output"`
}

func (r rewriteResponse) value() string {
	for _, candidate := range []string{r.Eli5, r.Text, r.Result, r.Output} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Rewrite sends the text to the endpoint and returns the simplified
// rendition. Non-2xx responses and transport failures are returned as
// errors; the simplifier chain treats them as a signal to fall through.
func (c *Client) Rewrite(ctx context.Context, text string) (string, error) {
	payloadBytes, err := json.Marshal(rewriteRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.BaseURL + "/api/eli5"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("rewriter request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("rewriter error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed rewriteResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.value(), nil
}
