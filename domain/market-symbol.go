package domain

import (
	"fmt"
	"strings"
)

// MarketSymbol is a canonical pair identifier such as "BTC-USD" or
// "PI_XBTUSD". Identifiers are opaque to the core; they are only normalised.
type MarketSymbol string

func NewMarketSymbol(s string) (MarketSymbol, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("market symbol must not be empty")
	}
	if strings.ContainsAny(s, " \t\n") {
		return "", fmt.Errorf("market symbol %q must not contain whitespace", s)
	}
	return MarketSymbol(strings.ToUpper(s)), nil
}

func (ms MarketSymbol) String() string {
	return string(ms)
}

func (ms MarketSymbol) Equal(other MarketSymbol) bool {
	return ms == other
}
