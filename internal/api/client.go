// Package api implements the HTTP client for the journal backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"golang.org/x/time/rate"

	"trade-journal/internal/config"
	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/resilience"
	"trade-journal/pkg/utils"
)

const tradesCacheKey = "trades"

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RateLimit  float64 // requests per second, 0 = unlimited
	CacheTTL   time.Duration
	RetryDelay time.Duration
	HTTPClient *http.Client

	// BreakerThreshold consecutive transport or 5xx failures open the
	// circuit for BreakerCooldown. Zero uses the resilience defaults.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// OptionsFromConfig builds client options from the [api] config section.
func OptionsFromConfig(cfg config.APIConfig) Options {
	return Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RateLimit:  cfg.RateLimit,
		CacheTTL:   cfg.CacheTTL,

		BreakerThreshold: cfg.BreakerThreshold,
		BreakerCooldown:  cfg.BreakerCooldown,
	}
}

// Client talks to the journal REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	ttl     time.Duration
	retry   utils.RetryConfig
	breaker *resilience.CircuitBreaker
	logger  zerolog.Logger
}

// New creates a client.
func New(opts Options, logger zerolog.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
	}

	retry := utils.DefaultRetryConfig()
	retry.MaxAttempts = opts.MaxRetries + 1
	if opts.RetryDelay > 0 {
		retry.InitialDelay = opts.RetryDelay
	}
	retry.ShouldRetry = isRetryable

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		ttl:     opts.CacheTTL,
		retry:   retry,
		breaker: resilience.NewCircuitBreaker("journal-backend", resilience.CircuitBreakerConfig{
			FailureThreshold: opts.BreakerThreshold,
			Cooldown:         opts.BreakerCooldown,
			IsFailure:        isRetryable,
		}),
		logger: logger.With().Str("component", "api").Logger(),
	}
	if opts.CacheTTL > 0 {
		c.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c
}

// isRetryable reports whether err is a transport failure or a 5xx response.
func isRetryable(err error) bool {
	var apiErr *errors.APIError
	return errors.As(err, &apiErr) && apiErr.Retryable()
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTrades fetches every trade. A recent result is served from cache.
func (c *Client) ListTrades(ctx context.Context) ([]models.TradeRecord, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(tradesCacheKey); ok {
			records := cached.([]models.TradeRecord)
			return append([]models.TradeRecord(nil), records...), nil
		}
	}

	raw, err := utils.RetryWithResult(ctx, c.retry, func() (json.RawMessage, error) {
		var body json.RawMessage
		err := c.do(ctx, http.MethodGet, "/trades/", nil, &body)
		return body, err
	})
	if err != nil {
		return nil, err
	}

	records, err := decodeTradeList(raw)
	if err != nil {
		return nil, errors.NewDataError("trades", "unexpected response shape", err)
	}

	if c.cache != nil {
		c.cache.Set(tradesCacheKey, append([]models.TradeRecord(nil), records...), cache.DefaultExpiration)
	}
	return records, nil
}

// CreateTrade posts a new trade and returns the stored record.
func (c *Client) CreateTrade(ctx context.Context, payload models.TradePayload) (*models.TradeRecord, error) {
	var rec models.TradeRecord
	if err := c.do(ctx, http.MethodPost, "/trades/", payload, &rec); err != nil {
		return nil, err
	}
	c.InvalidateCache()
	return &rec, nil
}

// UpdateTrade sends a partial update.
func (c *Client) UpdateTrade(ctx context.Context, id int64, payload models.TradePayload) (*models.TradeRecord, error) {
	var rec models.TradeRecord
	if err := c.do(ctx, http.MethodPut, tradePath(id, true), payload, &rec); err != nil {
		return nil, err
	}
	c.InvalidateCache()
	return &rec, nil
}

// CloseTrade patches a trade to CLOSED with its realized P&L.
func (c *Client) CloseTrade(ctx context.Context, id int64, payload models.ClosePayload) (*models.TradeRecord, error) {
	var rec models.TradeRecord
	if err := c.do(ctx, http.MethodPatch, tradePath(id, true), payload, &rec); err != nil {
		return nil, err
	}
	c.InvalidateCache()
	return &rec, nil
}

// DeleteTrade removes a trade. Backends disagree on the trailing slash, so
// the bare path is tried when the canonical one fails.
func (c *Client) DeleteTrade(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, tradePath(id, true), nil, nil)
	if err != nil {
		var apiErr *errors.APIError
		if !errors.As(err, &apiErr) {
			return err
		}
		c.logger.Debug().Int64("trade_id", id).Msg("Retrying delete without trailing slash")
		if err := c.do(ctx, http.MethodDelete, tradePath(id, false), nil, nil); err != nil {
			return err
		}
	}
	c.InvalidateCache()
	return nil
}

// ListTransfers fetches the capital transfers and their summary.
func (c *Client) ListTransfers(ctx context.Context) (*models.TransferList, error) {
	raw, err := utils.RetryWithResult(ctx, c.retry, func() (json.RawMessage, error) {
		var body json.RawMessage
		err := c.do(ctx, http.MethodGet, "/transfers/", nil, &body)
		return body, err
	})
	if err != nil {
		return nil, err
	}

	list, err := decodeTransferList(raw)
	if err != nil {
		return nil, errors.NewDataError("transfers", "unexpected response shape", err)
	}
	return list, nil
}

// InvalidateCache drops the cached trade list.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.Delete(tradesCacheKey)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		logging.LogAPICall(c.logger, method, path, status, time.Since(start), err)
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	err = c.breaker.Execute(ctx, func() error {
		var rtErr error
		status, rtErr = c.roundTrip(ctx, method, path, body, out)
		return rtErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		stats := c.breaker.Stats()
		c.logger.Warn().
			Str("breaker", stats.Name).
			Int64("failures", stats.TotalFailures).
			Int64("rejected", stats.TotalRejected).
			Time("last_failure", stats.LastFailureTime).
			Msg("Circuit open, skipping backend call")
		return fmt.Errorf("%w: %s %s: %w", errors.ErrRequestFailed, method, path, err)
	}
	return err
}

// roundTrip performs one HTTP exchange and returns the response status.
func (c *Client) roundTrip(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, errors.Wrap(err, "encoding request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, errors.NewAPIError(method, path, 0, err.Error(), nil)
	}
	defer resp.Body.Close()
	status := resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return status, errors.NewAPIError(method, path, status, "reading response: "+err.Error(), nil)
	}

	if status >= http.StatusBadRequest {
		return status, errors.NewAPIError(method, path, status, errorMessage(data, status), nil)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return status, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return status, errors.NewDataError(path, "decoding response", err)
	}
	return status, nil
}

func tradePath(id int64, trailingSlash bool) string {
	if trailingSlash {
		return fmt.Sprintf("/trades/%d/", id)
	}
	return fmt.Sprintf("/trades/%d", id)
}

// decodeTradeList accepts a bare array or an object with a data or trades
// array.
func decodeTradeList(raw json.RawMessage) ([]models.TradeRecord, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []models.TradeRecord{}, nil
	}

	if raw[0] == '[' {
		var records []models.TradeRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Trades json.RawMessage `json:"trades"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	for _, inner := range []json.RawMessage{envelope.Data, envelope.Trades} {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '[' {
			return decodeTradeList(inner)
		}
	}
	return nil, fmt.Errorf("no trade array in response")
}

func decodeTransferList(raw json.RawMessage) (*models.TransferList, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	inner := bytes.TrimSpace(envelope.Data)
	if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		inner = raw
	}

	var list models.TransferList
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, err
	}
	if list.Transfers == nil {
		list.Transfers = []models.Transfer{}
	}
	return &list, nil
}

// errorMessage extracts a readable message from an error body.
func errorMessage(body []byte, status int) string {
	fallback := http.StatusText(status)
	if fallback == "" {
		fallback = fmt.Sprintf("status %d", status)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		text := strings.TrimSpace(string(body))
		if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
			return text
		}
		return fallback
	}

	for _, key := range []string{"detail", "message", "error"} {
		if v, ok := payload[key]; ok {
			if msg := flatten(v); msg != "" {
				return msg
			}
		}
	}

	// field errors: {"instrument": ["This field is required."]}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		if msg := flatten(payload[k]); msg != "" {
			parts = append(parts, k+": "+msg)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "; ")
	}
	return fallback
}

func flatten(v interface{}) string {
	switch val := v.(type) {
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]interface{}:
		data, _ := json.Marshal(val)
		return string(data)
	default:
		return strings.TrimSpace(cast.ToString(val))
	}
}
