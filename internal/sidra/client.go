package sidra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"ipcacli/internal/config"
	"ipcacli/internal/errors"
)

// Client fetches IPCA observations from the SIDRA /values API.
// Outbound calls are rate limited and retried with a fixed backoff on
// transient failures (transport errors, 429 and 5xx responses).
type Client struct {
	httpClient *http.Client
	cfg        config.SidraConfig
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a SIDRA client from configuration
func NewClient(cfg config.SidraConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:     logger,
	}
}

// FetchValues requests the configured table from SIDRA, trying each
// configured period expression in order until one succeeds. The returned
// payload still contains the API's descriptive header row.
func (c *Client) FetchValues(ctx context.Context) ([]RawRecord, error) {
	var lastErr error

	for _, period := range c.cfg.Periods {
		records, err := c.fetchPeriod(ctx, period)
		if err == nil {
			return records, nil
		}

		lastErr = err
		c.logger.WarnContext(ctx, "SIDRA request failed, trying next period expression",
			slog.String("period", period),
			slog.String("error", err.Error()))
	}

	if lastErr == nil {
		lastErr = errors.NewAPIError("no period expressions configured", nil)
	}
	return nil, lastErr
}

// fetchPeriod performs one GET with bounded retries
func (c *Client) fetchPeriod(ctx context.Context, period string) ([]RawRecord, error) {
	requestURL := c.valuesURL(period)

	var lastErr error
	attempts := c.cfg.MaxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.NewNetworkError("rate limiter interrupted", err)
		}

		c.logger.InfoContext(ctx, "Requesting SIDRA values",
			slog.String("url", requestURL),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts))

		records, retryable, err := c.doRequest(ctx, requestURL)
		if err == nil {
			return records, nil
		}

		lastErr = err
		if !retryable || attempt == attempts {
			break
		}

		c.logger.WarnContext(ctx, "SIDRA request attempt failed, backing off",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", c.cfg.RetryBackoff),
			slog.String("error", err.Error()))

		select {
		case <-time.After(c.cfg.RetryBackoff):
		case <-ctx.Done():
			return nil, errors.NewNetworkError("request cancelled during backoff", ctx.Err())
		}
	}

	return nil, lastErr
}

// doRequest performs a single GET and decodes the payload. retryable
// reports whether the failure is worth another attempt.
func (c *Client) doRequest(ctx context.Context, requestURL string) (records []RawRecord, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, errors.NewNetworkError("failed to build request", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, errors.NewNetworkError("failed to reach SIDRA", err).
			WithContext("url", requestURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused across retries
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		apiErr := errors.NewAPIError(
			fmt.Sprintf("SIDRA returned status %d", resp.StatusCode), nil).
			WithContext("url", requestURL).
			WithContext("status", resp.StatusCode)
		return nil, isRetryableStatus(resp.StatusCode), apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, false, errors.NewAPIError("SIDRA returned a malformed body", err).
			WithContext("url", requestURL)
	}

	// A valid payload carries the header row plus at least one observation
	if len(records) < 2 {
		return nil, false, errors.NewAPIError("SIDRA returned an empty payload", nil).
			WithContext("url", requestURL)
	}

	c.logger.InfoContext(ctx, "SIDRA payload received",
		slog.Int("record_count", len(records)-1))

	return records, false, nil
}

// valuesURL builds the /values request URL for the configured table
func (c *Client) valuesURL(period string) string {
	return fmt.Sprintf("%s/values/t/%d/%s/all/v/%d/p/%s?formato=json",
		c.cfg.BaseURL,
		c.cfg.TableID,
		c.cfg.TerritorialLevel,
		c.cfg.VariableID,
		url.PathEscape(period))
}

// isRetryableStatus reports whether a status code indicates a transient
// condition (throttling or server-side failure)
func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
