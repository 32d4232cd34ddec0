package bbref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/metrics"
	"courtiq/pipeline/internal/models"
)

// Client fetches season advanced pages from basketball-reference.com
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      client.RetryPolicy
}

// NewClient creates a Basketball-Reference client
func NewClient(baseURL string, timeout time.Duration, retry client.RetryPolicy) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry: retry,
	}
}

// FetchAdvanced downloads and parses the advanced stats table for one
// season, e.g. "2024-25" resolves to /leagues/NBA_2025_advanced.html
func (c *Client) FetchAdvanced(ctx context.Context, season string) ([]*PlayerAdvanced, error) {
	endYear, err := models.SeasonEndYear(season)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/leagues/NBA_%d_advanced.html", c.baseURL, endYear)

	var page string
	err = c.retry.Do(ctx, "bbref_advanced", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.APICallsTotal.WithLabelValues("bbref_advanced", "error").Inc()
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			metrics.APICallsTotal.WithLabelValues("bbref_advanced", "error").Inc()
			return fmt.Errorf("failed to read response: %w", err)
		}

		metrics.APICallsTotal.WithLabelValues("bbref_advanced", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("bbref returned status %d for %s", resp.StatusCode, url)
		}

		page = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ParseAdvancedPage(page)
}
