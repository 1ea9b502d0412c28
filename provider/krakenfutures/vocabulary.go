package krakenfutures

import (
	"strings"

	"github.com/spooky-finn/go-cryptofeed/domain"
)

var channels = map[domain.EventKind]string{
	domain.Trades:    "trade",
	domain.Ticker:    "ticker_lite",
	domain.L2Book:    "book",
	domain.BookDelta: "book",
}

// Vocabulary maps canonical names to Kraken Futures wire names. Pairs are
// instrument symbols on both sides and only differ in case.
type Vocabulary struct{}

func (Vocabulary) PairToExchange(pair string) string {
	return strings.ToUpper(pair)
}

func (Vocabulary) PairFromExchange(symbol string) string {
	return strings.ToUpper(symbol)
}

func (Vocabulary) ChannelToExchange(channel domain.EventKind) string {
	if ch, ok := channels[channel]; ok {
		return ch
	}
	return string(channel)
}
