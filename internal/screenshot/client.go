// Package screenshot talks to the external rendering service that turns a
// live app URL into a preview image. The service is addressed by a URL
// template; the target page URL is substituted in query-escaped.
package screenshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxImageBytes caps the downloaded image size (8 MiB).
const maxImageBytes = 8 << 20

// Client captures screenshots through an HTTP rendering service.
type Client struct {
	// Endpoint is the render-service URL. A literal "{url}" placeholder is
	// replaced with the query-escaped target; without a placeholder the
	// target is appended as a "url" query parameter.
	Endpoint string

	// HTTPClient is used for outbound calls; nil means a default client
	// with a 30s timeout.
	HTTPClient *http.Client
}

// NewClient builds a Client for the given endpoint template.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Capture renders target and returns the image bytes and content type.
// Non-2xx responses and non-image payloads are errors; callers decide
// whether to fall back to a cached copy or an external URL.
func (c *Client) Capture(ctx context.Context, target string) ([]byte, string, error) {
	if c.Endpoint == "" {
		return nil, "", fmt.Errorf("screenshot: no endpoint configured")
	}

	reqURL := c.renderURL(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("screenshot: build request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	httpc := c.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("screenshot: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("screenshot: render service returned %d", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return nil, "", fmt.Errorf("screenshot: unexpected content type %q", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("screenshot: read body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("screenshot: image exceeds %d bytes", maxImageBytes)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("screenshot: empty image")
	}
	return data, ct, nil
}

// renderURL substitutes the target into the endpoint template.
func (c *Client) renderURL(target string) string {
	escaped := url.QueryEscape(target)
	if strings.Contains(c.Endpoint, "{url}") {
		return strings.ReplaceAll(c.Endpoint, "{url}", escaped)
	}
	sep := "?"
	if strings.Contains(c.Endpoint, "?") {
		sep = "&"
	}
	return c.Endpoint + sep + "url=" + escaped
}
