package domain

import "testing"

func samplePortfolio() Portfolio {
	return Portfolio{
		{Ticker: "GOOGL_US_EQ", Quantity: MustDecimal("2"), CurrentPrice: MustDecimal("140.5"), Ppl: MustDecimal("10.25")},
		{Ticker: "GSKl_EQ", Quantity: MustDecimal("10"), CurrentPrice: MustDecimal("14.2"), Ppl: MustDecimal("-3.5")},
	}
}

func TestPortfolio_Tickers(t *testing.T) {
	tickers := samplePortfolio().Tickers()
	if len(tickers) != 2 || tickers[0] != "GOOGL_US_EQ" || tickers[1] != "GSKl_EQ" {
		t.Errorf("unexpected tickers: %v", tickers)
	}
}

func TestPortfolio_FindByTicker(t *testing.T) {
	p := samplePortfolio()

	found := p.FindByTicker("GSKl_EQ")
	if len(found) != 1 || found[0].Ticker != "GSKl_EQ" {
		t.Errorf("expected one GSKl_EQ position, got %v", found)
	}

	missing := p.FindByTicker("UNKNOWN_EQ")
	if missing == nil || len(missing) != 0 {
		t.Errorf("expected empty non-nil result, got %v", missing)
	}

	if !p.Holds("GOOGL_US_EQ") || p.Holds("GOOGL") {
		t.Error("Holds must match broker tickers exactly")
	}
}

func TestPortfolio_Totals(t *testing.T) {
	p := samplePortfolio()

	total, err := p.TotalPpl()
	if err != nil {
		t.Fatalf("TotalPpl failed: %v", err)
	}
	if !total.Equal(MustDecimal("6.75")) {
		t.Errorf("expected 6.75, got %s", total)
	}

	value, err := p[0].MarketValue()
	if err != nil {
		t.Fatalf("MarketValue failed: %v", err)
	}
	if !value.Equal(MustDecimal("281")) {
		t.Errorf("expected 281, got %s", value)
	}

	totalValue, err := p.TotalMarketValue()
	if err != nil {
		t.Fatalf("TotalMarketValue failed: %v", err)
	}
	if !totalValue.Equal(MustDecimal("423")) {
		t.Errorf("expected 423, got %s", totalValue)
	}
}

func TestAlternateTicker(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"FRA:SAP", "ETR:SAP", true},
		{"NSQ:GRVY", "NMQ:GRVY", true},
		{"OTC:NSRGY", "PNK:NSRGY", true},
		{"LON:CNA", "", false},
		{"NSQ", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			alt, ok := AlternateTicker(tc.input)
			if ok != tc.ok || alt != tc.expected {
				t.Errorf("AlternateTicker(%q) = %q, %v; want %q, %v", tc.input, alt, ok, tc.expected, tc.ok)
			}
		})
	}

	if got := FormatGenericTicker(ExchangeLON, "CNA"); got != "LON:CNA" {
		t.Errorf("expected LON:CNA, got %s", got)
	}
}
