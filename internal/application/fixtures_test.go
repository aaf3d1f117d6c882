package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

type fakeProvider struct {
	mu          sync.Mutex
	exchanges   []domain.Exchange
	portfolio   domain.Portfolio
	instruments []domain.Instrument
	orders      []domain.Order
	err         error
	calls       map[string]int
}

func (p *fakeProvider) record(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	p.calls[name]++
	return p.err
}

func (p *fakeProvider) Calls(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[name]
}

func (p *fakeProvider) Exchanges(_ context.Context) ([]domain.Exchange, error) {
	if err := p.record("exchanges"); err != nil {
		return nil, err
	}
	return p.exchanges, nil
}

func (p *fakeProvider) Portfolio(_ context.Context) (domain.Portfolio, error) {
	if err := p.record("portfolio"); err != nil {
		return nil, err
	}
	return p.portfolio, nil
}

func (p *fakeProvider) Instruments(_ context.Context) ([]domain.Instrument, error) {
	if err := p.record("instruments"); err != nil {
		return nil, err
	}
	return p.instruments, nil
}

func (p *fakeProvider) EquityOrders(_ context.Context) ([]domain.Order, error) {
	if err := p.record("orders"); err != nil {
		return nil, err
	}
	return p.orders, nil
}

var errBrokerDown = errors.New("broker down")

func exchange(id int64, name string, schedules ...int64) domain.Exchange {
	e := domain.Exchange{ID: id, Name: name}
	for _, s := range schedules {
		e.WorkingSchedules = append(e.WorkingSchedules, domain.WorkingSchedule{ID: s})
	}
	return e
}

func sampleExchanges() []domain.Exchange {
	return []domain.Exchange{
		exchange(1, "London Stock Exchange", 10, 11),
		exchange(2, "London Stock Exchange AIM", 20),
		exchange(3, "London Stock Exchange NON-ISA", 30),
		exchange(4, "NASDAQ", 40, 41),
		exchange(5, "NASDAQ Dubai Derivatives", 50),
		exchange(6, "NYSE", 60),
		exchange(7, "Unlisted Venue", 70),
	}
}

func sampleInstruments() []domain.Instrument {
	return []domain.Instrument{
		domain.NewInstrument("AAPL_US_EQ", "AAPL", "Apple", domain.InstrumentTypeStock, 40, "USD"),
		domain.NewInstrument("QQQ_US_EQ", "QQQ", "Invesco QQQ", domain.InstrumentTypeETF, 41, "USD"),
		domain.NewInstrument("DUBX_EQ", "DUBX", "Dubai Decoy", domain.InstrumentTypeStock, 50, "USD"),
		domain.NewInstrument("CNAl_EQ", "CNA", "Centrica", domain.InstrumentTypeStock, 10, "GBX"),
		domain.NewInstrument("BWPl_EQ", "BWP", "Bristol & West PRF", domain.InstrumentTypeStock, 11, "GBX"),
		domain.NewInstrument("ACMEl_EQ", "ACME", "Acme (Preference)", domain.InstrumentTypeStock, 30, "GBX"),
		domain.NewInstrument("BOOl_EQ", "BOO", "Boohoo", domain.InstrumentTypeStock, 20, "GBX"),
		domain.NewInstrument("KO_US_EQ", "KO", "Coca-Cola", domain.InstrumentTypeStock, 60, "USD"),
		domain.NewInstrument("ORPH_EQ", "ORPH", "Orphan", domain.InstrumentTypeStock, 999, "USD"),
		domain.NewInstrument("ODD_EQ", "ODD", "Odd Venue", domain.InstrumentTypeStock, 70, "USD"),
	}
}

func samplePortfolio() domain.Portfolio {
	return domain.Portfolio{
		{Ticker: "AAPL_US_EQ", Quantity: domain.MustDecimal("2"), AveragePrice: domain.MustDecimal("150.5")},
		{Ticker: "BOOl_EQ", Quantity: domain.MustDecimal("100")},
		{Ticker: "BWPl_EQ", Quantity: domain.MustDecimal("10")},
		{Ticker: "ACMEl_EQ", Quantity: domain.MustDecimal("5")},
		{Ticker: "CNAl_EQ", Quantity: domain.MustDecimal("40")},
		{Ticker: "DUBX_EQ", Quantity: domain.MustDecimal("1")},
	}
}

func newSampleProvider() *fakeProvider {
	return &fakeProvider{
		exchanges:   sampleExchanges(),
		portfolio:   samplePortfolio(),
		instruments: sampleInstruments(),
		orders:      []domain.Order{{ID: 1, Ticker: "AAPL_US_EQ"}},
	}
}

func newSampleClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), newSampleProvider(), nil, 0)
	require.NoError(t, err)
	return client
}
