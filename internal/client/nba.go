// Package client talks to the stats.nba.com JSON API. Endpoints return
// header/rowSet tables decoded into Table values; retry, pacing, and
// header requirements are handled here so jobs only see typed tables.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"courtiq/pipeline/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Client is the stats.nba.com API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	pacer      *Pacer
	retry      RetryPolicy
}

// NewClient creates a stats.nba.com client. The pacer enforces the
// minimum inter-request delay across every endpoint; retry covers
// transient network and throttling failures.
func NewClient(baseURL string, timeout, requestDelay time.Duration, retry RetryPolicy) *Client {
	return &Client{
		baseURL: baseURL,
		pacer:   NewPacer(requestDelay),
		retry:   retry,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET against one endpoint with pacing and retry.
// stats.nba.com silently hangs or blocks without browser-like headers.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	var body []byte
	err := c.retry.Do(ctx, endpoint, func() error {
		c.pacer.Wait()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "application/json, text/plain, */*")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Origin", "https://www.nba.com")
		req.Header.Set("Referer", "https://www.nba.com/")

		log.Debug().Str("endpoint", endpoint).Msg("Making NBA API request")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.APICallsTotal.WithLabelValues(endpoint, "error").Inc()
			return fmt.Errorf("API request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			metrics.APICallsTotal.WithLabelValues(endpoint, "error").Inc()
			return fmt.Errorf("failed to read response body: %w", err)
		}

		metrics.APICallsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncate(data, 200))
		}

		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// PlayerIndex fetches the active roster with biographical data
// (height, weight, position, draft info). One row per player-team.
func (c *Client) PlayerIndex(ctx context.Context, season string) (*Table, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", season)
	params.Set("Historical", "0")

	body, err := c.get(ctx, "playerindex", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player index: %w", err)
	}
	return decodeResultSet(body, "PlayerIndex")
}

// MeasureType selects which bulk stat table LeagueDashPlayerStats returns
type MeasureType string

const (
	MeasureBase     MeasureType = "Base"
	MeasureAdvanced MeasureType = "Advanced"
)

// LeagueDashPlayerStats fetches league-wide per-game stats for every
// player in one call, one row per player. The bulk endpoint replaces
// hundreds of per-player calls.
func (c *Client) LeagueDashPlayerStats(ctx context.Context, season string, measure MeasureType) (*Table, error) {
	params := url.Values{}
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("MeasureType", string(measure))
	params.Set("PerMode", "PerGame")
	params.Set("LeagueID", "00")

	body, err := c.get(ctx, "leaguedashplayerstats", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league player stats: %w", err)
	}
	return decodeResultSet(body, "LeagueDashPlayerStats")
}

// PlayerGameLogs fetches the full season's box scores for every player
// in one call, one row per player-game.
func (c *Client) PlayerGameLogs(ctx context.Context, season string) (*Table, error) {
	params := url.Values{}
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("LeagueID", "00")

	body, err := c.get(ctx, "playergamelogs", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player game logs: %w", err)
	}
	return decodeResultSet(body, "PlayerGameLogs")
}

// ShotChartDetail fetches every shot attempt for one player-season with
// court coordinates and zone metadata. Heavily throttled upstream; the
// shot chart job adds its own pauses on top of the pacer.
func (c *Client) ShotChartDetail(ctx context.Context, playerID int, season string) (*Table, error) {
	params := url.Values{}
	params.Set("PlayerID", strconv.Itoa(playerID))
	params.Set("TeamID", "0")
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("ContextMeasure", "FGA")

	body, err := c.get(ctx, "shotchartdetail", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shot chart for player %d: %w", playerID, err)
	}
	return decodeResultSet(body, "Shot_Chart_Detail")
}
