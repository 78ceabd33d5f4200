package usda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/marlondridley/FarME/internal/domain"
	"golang.org/x/time/rate"
)

// Client queries the USDA Local Food Portal directory API. Each directory
// (farmers markets, CSAs, on-farm markets, food hubs, agritourism) is its own
// endpoint taking a center point and a radius in miles.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	rateLimiter  *rate.Limiter
	placeholders domain.PlaceholderSource
	debug        bool
}

// NewClient creates a new directory API client.
func NewClient(apiKey, baseURL string, placeholders domain.PlaceholderSource) *Client {
	// The portal allows 1000 requests per hour, shared across directories.
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:       apiKey,
		baseURL:      baseURL,
		rateLimiter:  limiter,
		placeholders: placeholders,
	}
}

// SetDebug enables request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// searchResponse is the wire shape of a directory query result.
type searchResponse struct {
	Data []RawRecord `json:"data"`
}

// Search performs one directory query and returns normalized listings. An
// empty slice with a nil error means the directory genuinely had no listings
// in range; transport and HTTP failures wrap domain.ErrDirectoryUnavailable
// so the aggregator can tell the two apart. A missing API key short-circuits
// before any network call.
func (c *Client) Search(ctx context.Context, dir domain.Directory, center domain.GeoPoint, radiusMiles float64) ([]domain.Listing, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/api/%s/", c.baseURL, dir)
	params := url.Values{}
	params.Add("apikey", c.apiKey)
	params.Add("x", fmt.Sprintf("%f", center.Longitude))
	params.Add("y", fmt.Sprintf("%f", center.Latitude))
	params.Add("radius", fmt.Sprintf("%.0f", radiusMiles))

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	// Retry transient failures with backoff before reporting the directory
	// as unavailable.
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[USDA] %s request error (attempt %d): %v", dir, attempt, err)
			}
			lastErr = err
			if attempt == maxAttempts {
				break
			}
			if !sleepCtx(ctx, exponentialBackoff(attempt)) {
				return nil, lastErr
			}
			continue
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("%w: decoding %s response: %v", domain.ErrDirectoryUnavailable, dir, err)
		}

		if c.debug {
			log.Printf("[USDA] %s returned %d records", dir, len(searchResp.Data))
		}

		return NormalizeAll(searchResp.Data, dir, c.placeholders.Rating()), nil
	}

	return nil, lastErr
}

const maxAttempts = 3

// doRequest executes one GET and returns the response body on a 2xx status.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "FarME/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrDirectoryUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrDirectoryUnavailable, resp.StatusCode)
	}

	return body, nil
}

// exponentialBackoff returns the wait before the next attempt: 500ms, 1s, 2s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// IsUnavailable reports whether err represents a directory that could not be
// reached, as opposed to an empty result.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrDirectoryUnavailable)
}
