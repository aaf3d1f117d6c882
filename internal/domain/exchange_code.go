package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ExchangeCode identifies a trading venue the way the research service
// prefixes its tickers (mostly the Google Finance prefix).
type ExchangeCode string

const (
	ExchangeAMS       ExchangeCode = "AMS"
	ExchangeBIT       ExchangeCode = "BIT"
	ExchangeNSQ       ExchangeCode = "NSQ"
	ExchangeLONNonISA ExchangeCode = "LON-NON-ISA"
	ExchangeEPA       ExchangeCode = "EPA"
	ExchangeOTC       ExchangeCode = "OTC"
	ExchangeSWX       ExchangeCode = "SWX"
	ExchangeLON       ExchangeCode = "LON"
	ExchangeMAD       ExchangeCode = "MAD"
	ExchangeWBAG      ExchangeCode = "WBAG"
	ExchangeNYQ       ExchangeCode = "NYQ"
	ExchangeEBR       ExchangeCode = "EBR"
	ExchangeELI       ExchangeCode = "ELI"
	ExchangeFRA       ExchangeCode = "FRA"
	ExchangeAIM       ExchangeCode = "AIM"
)

var exchangeCodes = []ExchangeCode{
	ExchangeAMS, ExchangeBIT, ExchangeNSQ, ExchangeLONNonISA, ExchangeEPA,
	ExchangeOTC, ExchangeSWX, ExchangeLON, ExchangeMAD, ExchangeWBAG,
	ExchangeNYQ, ExchangeEBR, ExchangeELI, ExchangeFRA, ExchangeAIM,
}

// exchangeNameByCode maps a code to the broker's exchange display name.
// Names must be compared in full: "London Stock Exchange" is a prefix of
// both the AIM and NON-ISA names.
var exchangeNameByCode = map[ExchangeCode]string{
	ExchangeAMS:       "Euronext Amsterdam",
	ExchangeBIT:       "Borsa Italiana",
	ExchangeNSQ:       "NASDAQ",
	ExchangeLONNonISA: "London Stock Exchange NON-ISA",
	ExchangeEPA:       "Euronext Paris",
	ExchangeOTC:       "OTC Markets",
	ExchangeSWX:       "SIX Swiss Exchange",
	ExchangeLON:       "London Stock Exchange",
	ExchangeMAD:       "Bolsa de Madrid",
	ExchangeWBAG:      "Wiener Börse", // research-service prefix, not Google's
	ExchangeNYQ:       "NYSE",
	ExchangeEBR:       "Euronext Brussels",
	ExchangeELI:       "Euronext Lisbon",
	ExchangeFRA:       "Deutsche Börse Xetra",
	ExchangeAIM:       "London Stock Exchange AIM",
}

// exchangeCodeByName is the reverse table. It is not the inverse of
// exchangeNameByCode: the three London venues all collapse to LON.
var exchangeCodeByName = map[string]ExchangeCode{
	"Euronext Amsterdam":            ExchangeAMS,
	"Borsa Italiana":                ExchangeBIT,
	"NASDAQ":                        ExchangeNSQ,
	"London Stock Exchange NON-ISA": ExchangeLON,
	"Euronext Paris":                ExchangeEPA,
	"OTC Markets":                   ExchangeOTC,
	"SIX Swiss Exchange":            ExchangeSWX,
	"London Stock Exchange":         ExchangeLON,
	"Bolsa de Madrid":               ExchangeMAD,
	"Wiener Börse":                  ExchangeWBAG,
	"NYSE":                          ExchangeNYQ,
	"Euronext Brussels":             ExchangeEBR,
	"Euronext Lisbon":               ExchangeELI,
	"Deutsche Börse Xetra":          ExchangeFRA,
	"London Stock Exchange AIM":     ExchangeLON,
}

// ExchangeCodes returns every known code in declaration order.
func ExchangeCodes() []ExchangeCode {
	return slices.Clone(exchangeCodes)
}

// ExchangeName returns the broker display name the code resolves to.
func (c ExchangeCode) ExchangeName() (string, bool) {
	name, ok := exchangeNameByCode[c]
	return name, ok
}

func (c ExchangeCode) String() string {
	return string(c)
}

// ExchangeCodeForName maps a broker display name to its output code.
func ExchangeCodeForName(name string) (ExchangeCode, bool) {
	code, ok := exchangeCodeByName[name]
	return code, ok
}

// ParseExchangeCode validates s against the known codes. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseExchangeCode(s string) (ExchangeCode, error) {
	code := ExchangeCode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := exchangeNameByCode[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownExchangeCode, s)
	}
	return code, nil
}

// ParseExchangeCodes parses a comma separated list such as "LON,AIM".
// An empty string yields no codes.
func ParseExchangeCodes(csv string) ([]ExchangeCode, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	codes := make([]ExchangeCode, 0, len(parts))
	for _, part := range parts {
		code, err := ParseExchangeCode(part)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}
