package application

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/broker"
)

// Client holds the exchanges, portfolio and instruments tables loaded at
// construction. The tables never change afterwards; build a new Client to
// see fresh data.
type Client struct {
	provider    broker.Provider
	mode        Mode
	loadedAt    time.Time
	exchanges   []domain.Exchange
	portfolio   domain.Portfolio
	instruments []domain.Instrument
}

// NewClient loads exchanges, portfolio and instruments in that order. store
// may be nil when neither ModeDebug nor ModeDumpToFile is set.
func NewClient(ctx context.Context, provider broker.Provider, store domain.SnapshotStore, mode Mode) (*Client, error) {
	return newClient(ctx, provider, store, mode, time.Now)
}

func newClient(ctx context.Context, provider broker.Provider, store domain.SnapshotStore, mode Mode, now func() time.Time) (*Client, error) {
	loader := &tableLoader{store: store, mode: mode, now: now}

	exchanges, err := loadTable(ctx, loader, TableExchanges, provider.Exchanges)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchanges: %w", err)
	}

	positions, err := loadTable(ctx, loader, TablePortfolio, func(ctx context.Context) ([]domain.Position, error) {
		return provider.Portfolio(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	instruments, err := loadTable(ctx, loader, TableInstruments, provider.Instruments)
	if err != nil {
		return nil, fmt.Errorf("failed to load instruments: %w", err)
	}

	return &Client{
		provider:    provider,
		mode:        mode,
		loadedAt:    now(),
		exchanges:   exchanges,
		portfolio:   domain.Portfolio(positions),
		instruments: instruments,
	}, nil
}

func (c *Client) Mode() Mode {
	return c.mode
}

func (c *Client) LoadedAt() time.Time {
	return c.loadedAt
}

func (c *Client) Exchanges() []domain.Exchange {
	out := make([]domain.Exchange, len(c.exchanges))
	for i, e := range c.exchanges {
		out[i] = e.Clone()
	}
	return out
}

func (c *Client) Portfolio() domain.Portfolio {
	return slices.Clone(c.portfolio)
}

func (c *Client) Instruments() []domain.Instrument {
	return slices.Clone(c.instruments)
}

// EquityOrders always asks the broker; orders are not part of the cached tables.
func (c *Client) EquityOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := c.provider.EquityOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equity orders: %w", err)
	}
	return orders, nil
}

func (c *Client) ExchangeCodes() []domain.ExchangeCode {
	return domain.ExchangeCodes()
}
