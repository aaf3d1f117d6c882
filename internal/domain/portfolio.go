package domain

// Portfolio is the ordered list of positions as returned by the broker.
type Portfolio []Position

// Tickers returns the broker-format tickers held, in portfolio order.
func (p Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p))
	for _, pos := range p {
		tickers = append(tickers, pos.Ticker)
	}
	return tickers
}

// Holds reports whether a broker-format ticker is held.
func (p Portfolio) Holds(ticker string) bool {
	for _, pos := range p {
		if pos.Ticker == ticker {
			return true
		}
	}
	return false
}

// FindByTicker returns every position with the exact broker ticker.
// A ticker that is not held yields an empty, non-nil slice.
func (p Portfolio) FindByTicker(ticker string) Portfolio {
	found := make(Portfolio, 0, 1)
	for _, pos := range p {
		if pos.Ticker == ticker {
			found = append(found, pos)
		}
	}
	return found
}

// TotalMarketValue sums the market value of every position. Positions in
// different currencies are added as is.
func (p Portfolio) TotalMarketValue() (Decimal, error) {
	total := Zero
	for _, pos := range p {
		value, err := pos.MarketValue()
		if err != nil {
			return Zero, err
		}
		if total, err = total.Add(value); err != nil {
			return Zero, err
		}
	}
	return total, nil
}

// TotalPpl sums the profit/loss of every position.
func (p Portfolio) TotalPpl() (Decimal, error) {
	total := Zero
	for _, pos := range p {
		var err error
		if total, err = total.Add(pos.Ppl); err != nil {
			return Zero, err
		}
	}
	return total, nil
}
