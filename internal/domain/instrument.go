package domain

import "strings"

type InstrumentType string

const (
	InstrumentTypeStock InstrumentType = "STOCK"
	InstrumentTypeETF   InstrumentType = "ETF"
)

// Instrument is a tradable security from the broker's catalog.
// Ticker is the broker format ("GOOGL_US_EQ"), ShortName the generic one ("GOOGL").
type Instrument struct {
	Ticker            string         `json:"ticker"`
	ShortName         string         `json:"shortName"`
	Type              InstrumentType `json:"type"`
	WorkingScheduleID int64          `json:"workingScheduleId"`
	CurrencyCode      string         `json:"currencyCode"`
	Name              string         `json:"name"`
	ISIN              string         `json:"isin,omitempty"`
	MaxOpenQuantity   Decimal        `json:"maxOpenQuantity"`
	AddedOn           string         `json:"addedOn,omitempty"`
}

func NewInstrument(ticker, shortName, name string, instrumentType InstrumentType, scheduleID int64, currency string) Instrument {
	return Instrument{
		Ticker:            ticker,
		ShortName:         shortName,
		Type:              instrumentType,
		WorkingScheduleID: scheduleID,
		CurrencyCode:      currency,
		Name:              name,
	}
}

// IsPreferenceShare matches on the display name: a literal " PRF" (which also
// catches names like "Bristol & West PRF") or a literal "(Preference)".
func (i Instrument) IsPreferenceShare() bool {
	return strings.Contains(i.Name, " PRF") || strings.Contains(i.Name, "(Preference)")
}
