package tradestore

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
)

// ClientInterface defines the interface for the remote trade store API.
type ClientInterface interface {
	Ping() error
	GetTrades(ctx context.Context) ([]TradeExport, error)
}

// Client pulls trade records from the remote journal export API.
// It implements the ClientInterface.
type Client struct {
	client  *resty.Client
	apiKey  string
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new trade store API client.
func NewClient(cfg *config.TradeStore, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		apiKey:  cfg.ApiKey,
		logger:  logger,
		limiter: limiter,
	}
}

// TradeExport is one trade as delivered by the export endpoint. Dates come
// over the wire as strings and are normalized at ingestion.
type TradeExport struct {
	ID         string  `json:"id"`
	DateOpened string  `json:"dateOpened"`
	Premium    float64 `json:"premium"`
	MarginReq  float64 `json:"marginReq"`
	PL         float64 `json:"pl"`
	Strategy   string  `json:"strategy"`
	Legs       string  `json:"legs"`
}

// Record converts the export row into the aggregation core's input contract.
func (e TradeExport) Record() journal.TradeRecord {
	return journal.TradeRecord{
		DateRaw:   e.DateOpened,
		Premium:   e.Premium,
		MarginReq: e.MarginReq,
		PL:        e.PL,
		Strategy:  e.Strategy,
		Legs:      e.Legs,
	}
}

// Ping checks connectivity with the trade store.
func (c *Client) Ping() error {
	req := c.client.R()
	ctx := context.Background()

	if _, err := c.doRequest(ctx, "GET", "/health", req); err != nil {
		c.logger.Error("Failed to ping trade store", zap.Error(err))
		return fmt.Errorf("failed to ping trade store: %w", err)
	}
	return nil
}

// GetTrades fetches the full trade export.
func (c *Client) GetTrades(ctx context.Context) ([]TradeExport, error) {
	var trades []TradeExport

	req := c.client.R().
		SetResult(&trades).
		SetHeader("Content-Type", "application/json")

	resp, err := c.doRequest(ctx, "GET", "/trades", req)
	if err != nil {
		return nil, fmt.Errorf("failed to get trades: %w", err)
	}

	result := resp.Result().(*[]TradeExport)
	return *result, nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	if c.apiKey != "" {
		req.SetHeader("X-API-KEY", c.apiKey)
	}

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
