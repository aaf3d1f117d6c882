package broker

import (
	"context"
	"errors"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

var (
	ErrUnauthorized = errors.New("broker rejected credentials")
	ErrRateLimited  = errors.New("broker rate limit reached")
)

// Provider is the read side of the broker REST API the tickers client needs.
type Provider interface {
	Exchanges(ctx context.Context) ([]domain.Exchange, error)
	Portfolio(ctx context.Context) (domain.Portfolio, error)
	Instruments(ctx context.Context) ([]domain.Instrument, error)
	EquityOrders(ctx context.Context) ([]domain.Order, error)
}
