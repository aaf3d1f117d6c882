package domain

// FormatGenericTicker renders "CODE:SHORT", e.g. "LON:CNA".
func FormatGenericTicker(code ExchangeCode, shortName string) string {
	return string(code) + ":" + shortName
}

// alternatePrefixes lists the prefixes the research service sometimes uses
// instead of the default one.
var alternatePrefixes = map[string]string{
	"FRA:": "ETR:",
	"NSQ:": "NMQ:",
	"OTC:": "PNK:",
}

// AlternateTicker returns the other spelling of a generic ticker to try when
// the research service does not know the first one (e.g. NSQ:GRVY -> NMQ:GRVY).
func AlternateTicker(ticker string) (string, bool) {
	if len(ticker) < 4 {
		return "", false
	}
	alt, ok := alternatePrefixes[ticker[:4]]
	if !ok {
		return "", false
	}
	return alt + ticker[4:], true
}
