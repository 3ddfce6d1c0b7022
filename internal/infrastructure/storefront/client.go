package storefront

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crawlproduct/backend/internal/domain"
)

// maxPageBytes caps how much of a product page is read into memory.
const maxPageBytes = 10 << 20 // 10 MB

// Client retrieves raw product page HTML over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new page fetch client. The timeout bounds the whole
// request; there is no retry on failure.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves the HTML document at pageURL. A browser-like User-Agent is
// sent because storefronts serve reduced markup to unknown clients.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", domain.ErrFetchFailed, err)
	}

	return string(body), nil
}
