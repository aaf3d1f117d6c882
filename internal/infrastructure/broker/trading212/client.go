package trading212

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/broker"
)

const (
	DemoBaseURL = "https://demo.trading212.com/api/v0"
	LiveBaseURL = "https://live.trading212.com/api/v0"

	exchangesPath   = "/equity/metadata/exchanges"
	instrumentsPath = "/equity/metadata/instruments"
	portfolioPath   = "/equity/portfolio"
	ordersPath      = "/equity/orders"
)

// endpointRates mirrors the limits the broker enforces per endpoint, so a
// call that would be rejected fails locally instead.
var endpointRates = map[string]limiter.Rate{
	exchangesPath:   {Period: 30 * time.Second, Limit: 1},
	instrumentsPath: {Period: 50 * time.Second, Limit: 1},
	portfolioPath:   {Period: 5 * time.Second, Limit: 1},
	ordersPath:      {Period: 5 * time.Second, Limit: 1},
}

// Client implements broker.Provider using the Trading212 public REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiters   map[string]*limiter.Limiter
}

// NewClient creates a client for the demo or live environment.
func NewClient(apiKey string, demo bool) *Client {
	return NewClientWithHTTPClient(apiKey, demo, &http.Client{
		Timeout: 30 * time.Second,
	})
}

// NewClientWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewClientWithHTTPClient(apiKey string, demo bool, httpClient *http.Client) *Client {
	baseURL := LiveBaseURL
	if demo {
		baseURL = DemoBaseURL
	}

	store := memory.NewStore()
	limiters := make(map[string]*limiter.Limiter, len(endpointRates))
	for path, rate := range endpointRates {
		limiters[path] = limiter.New(store, rate)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		limiters:   limiters,
	}
}

// SetBaseURL sets the base URL for the API (useful for testing).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Exchanges lists the exchanges with their working schedules.
func (c *Client) Exchanges(ctx context.Context) ([]domain.Exchange, error) {
	var exchanges []domain.Exchange
	if err := c.get(ctx, exchangesPath, &exchanges); err != nil {
		return nil, fmt.Errorf("failed to fetch exchanges: %w", err)
	}
	return exchanges, nil
}

// Portfolio lists the open positions of the account.
func (c *Client) Portfolio(ctx context.Context) (domain.Portfolio, error) {
	var positions domain.Portfolio
	if err := c.get(ctx, portfolioPath, &positions); err != nil {
		return nil, fmt.Errorf("failed to fetch portfolio: %w", err)
	}
	return positions, nil
}

// Instruments lists every instrument tradable by the account.
func (c *Client) Instruments(ctx context.Context) ([]domain.Instrument, error) {
	var instruments []domain.Instrument
	if err := c.get(ctx, instrumentsPath, &instruments); err != nil {
		return nil, fmt.Errorf("failed to fetch instruments: %w", err)
	}
	return instruments, nil
}

// EquityOrders lists the pending equity orders.
func (c *Client) EquityOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, ordersPath, &orders); err != nil {
		return nil, fmt.Errorf("failed to fetch equity orders: %w", err)
	}
	return orders, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.reserve(ctx, path); err != nil {
		return err
	}

	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr, "url", reqURL)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: API returned status %d: %s", broker.ErrUnauthorized, resp.StatusCode, string(body))
	case http.StatusTooManyRequests:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: API returned status %d: %s", broker.ErrRateLimited, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// reserve consumes one request of the endpoint's budget, failing fast when
// it is exhausted.
func (c *Client) reserve(ctx context.Context, path string) error {
	l, ok := c.limiters[path]
	if !ok {
		return nil
	}

	lctx, err := l.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	if lctx.Reached {
		retryIn := time.Until(time.Unix(lctx.Reset, 0)).Round(time.Second)
		slog.Warn("Broker rate limit reached locally", "path", path, "retry_in", retryIn)
		return fmt.Errorf("%w: %s, retry in %s", broker.ErrRateLimited, path, retryIn)
	}
	return nil
}
