package domain

// Order is a pending equity order. Orders are never cached; they are read
// live on every request.
type Order struct {
	ID             int64   `json:"id"`
	Ticker         string  `json:"ticker"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	Strategy       string  `json:"strategy,omitempty"`
	Quantity       Decimal `json:"quantity"`
	FilledQuantity Decimal `json:"filledQuantity"`
	LimitPrice     Decimal `json:"limitPrice"`
	StopPrice      Decimal `json:"stopPrice"`
	Value          Decimal `json:"value"`
	FilledValue    Decimal `json:"filledValue"`
	CreationTime   string  `json:"creationTime,omitempty"`
}
