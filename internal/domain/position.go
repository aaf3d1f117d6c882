package domain

// Position is a holding in the account portfolio. The broker reports it with
// many more fields than the lookups need; the numeric ones are kept exact.
type Position struct {
	Ticker          string  `json:"ticker"`
	Quantity        Decimal `json:"quantity"`
	AveragePrice    Decimal `json:"averagePrice"`
	CurrentPrice    Decimal `json:"currentPrice"`
	Ppl             Decimal `json:"ppl"`
	FxPpl           Decimal `json:"fxPpl"`
	InitialFillDate string  `json:"initialFillDate,omitempty"`
	Frontend        string  `json:"frontend,omitempty"`
	MaxBuy          Decimal `json:"maxBuy"`
	MaxSell         Decimal `json:"maxSell"`
	PieQuantity     Decimal `json:"pieQuantity"`
}

// MarketValue is quantity times the current price, in instrument currency.
func (p Position) MarketValue() (Decimal, error) {
	return p.Quantity.Mul(p.CurrentPrice)
}
