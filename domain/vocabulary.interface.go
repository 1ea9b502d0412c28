package domain

// Vocabulary translates canonical pair identifiers and event kinds into the
// tokens a given exchange uses on the wire. Implementations are pure lookups.
type Vocabulary interface {
	PairToExchange(pair string) string
	PairFromExchange(symbol string) string
	ChannelToExchange(channel EventKind) string
}

// IdentityVocabulary uses canonical names on the wire.
type IdentityVocabulary struct{}

func (IdentityVocabulary) PairToExchange(pair string) string { return pair }
func (IdentityVocabulary) PairFromExchange(symbol string) string { return symbol }
func (IdentityVocabulary) ChannelToExchange(channel EventKind) string { return string(channel) }
