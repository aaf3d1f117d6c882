package application

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

// InstrumentFilter narrows the instrument table. Zero values mean "no
// filter", except that preference shares are left out of ticker listings
// unless IncludePreferenceShares is set.
//
// SkipUnmapped only affects the EXCHANGE:TICKER listings: rows whose
// schedule has no owning exchange, or whose exchange has no code, are
// dropped instead of failing the whole listing.
type InstrumentFilter struct {
	Type                    domain.InstrumentType
	ExchangeCodes           []domain.ExchangeCode
	IncludePreferenceShares bool
	SkipUnmapped            bool
}

// InstrumentsFiltered applies the type and exchange parts of f. Preference
// shares are not removed here.
func (c *Client) InstrumentsFiltered(f InstrumentFilter) ([]domain.Instrument, error) {
	var schedules map[int64]struct{}
	if len(f.ExchangeCodes) > 0 {
		ids, err := c.ExchangeCodeToScheduleIDs(f.ExchangeCodes)
		if err != nil {
			return nil, err
		}
		schedules = make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			schedules[id] = struct{}{}
		}
	}

	out := make([]domain.Instrument, 0, len(c.instruments))
	for _, inst := range c.instruments {
		if f.Type != "" && inst.Type != f.Type {
			continue
		}
		if schedules != nil {
			if _, ok := schedules[inst.WorkingScheduleID]; !ok {
				continue
			}
		}
		out = append(out, inst)
	}
	return out, nil
}

func (c *Client) PortfolioTickers() []string {
	return c.portfolio.Tickers()
}

func (c *Client) listed(f InstrumentFilter, heldOnly bool) ([]domain.Instrument, error) {
	filtered, err := c.InstrumentsFiltered(f)
	if err != nil {
		return nil, err
	}

	out := filtered[:0]
	for _, inst := range filtered {
		if heldOnly && !c.portfolio.Holds(inst.Ticker) {
			continue
		}
		if !f.IncludePreferenceShares && inst.IsPreferenceShare() {
			continue
		}
		out = append(out, inst)
	}
	return out, nil
}

func (c *Client) withExchange(rows []domain.Instrument, skipUnmapped bool) ([]string, error) {
	tickers := make([]string, 0, len(rows))
	for _, inst := range rows {
		code, err := c.ScheduleIDToExchangeCode(inst.WorkingScheduleID)
		if err != nil {
			if skipUnmapped && errors.Is(err, domain.ErrLookupNotFound) {
				slog.Debug("Skipping unmapped instrument", "ticker", inst.Ticker, "schedule_id", inst.WorkingScheduleID)
				continue
			}
			return nil, fmt.Errorf("ticker %s: %w", inst.Ticker, err)
		}
		tickers = append(tickers, domain.FormatGenericTicker(code, inst.ShortName))
	}
	return tickers, nil
}

// PortfolioGenericTickers returns the short names of held instruments in
// instrument table order.
func (c *Client) PortfolioGenericTickers(f InstrumentFilter) ([]string, error) {
	rows, err := c.listed(f, true)
	if err != nil {
		return nil, err
	}
	tickers := make([]string, 0, len(rows))
	for _, inst := range rows {
		tickers = append(tickers, inst.ShortName)
	}
	return tickers, nil
}

// PortfolioGenericTickersWithExchange is PortfolioGenericTickers with every
// entry rendered as "CODE:SHORT".
func (c *Client) PortfolioGenericTickersWithExchange(f InstrumentFilter) ([]string, error) {
	rows, err := c.listed(f, true)
	if err != nil {
		return nil, err
	}
	return c.withExchange(rows, f.SkipUnmapped)
}

// AllGenericTickersWithExchange renders every instrument matching f, held or
// not. The live table carries instruments on schedules no exchange owns, so
// an unfiltered listing fails unless f.SkipUnmapped is set.
func (c *Client) AllGenericTickersWithExchange(f InstrumentFilter) ([]string, error) {
	rows, err := c.listed(f, false)
	if err != nil {
		return nil, err
	}
	return c.withExchange(rows, f.SkipUnmapped)
}

// Position returns the rows held under ticker, or the whole portfolio when
// ticker is empty. An unknown ticker yields an empty result.
func (c *Client) Position(ticker string) domain.Portfolio {
	if ticker == "" {
		return c.Portfolio()
	}
	return c.portfolio.FindByTicker(ticker)
}
