package krakenfutures

import "github.com/spooky-finn/go-cryptofeed/domain"

// KrakenDepthUpdateValidator checks the per-product "seq" of book messages.
type KrakenDepthUpdateValidator struct{}

func (v *KrakenDepthUpdateValidator) IsValidUpd(seq int64, lastSeq int64) error {
	// replayed or stale message
	if seq <= lastSeq {
		return domain.ErrOrderBookUpdateIsOutdated
	}

	if seq > lastSeq+1 {
		return domain.ErrOrderBookUpdateIsOutOfSequece
	}

	return nil
}

func (v *KrakenDepthUpdateValidator) IsErrOutOfSequece(err error) bool {
	return err == domain.ErrOrderBookUpdateIsOutOfSequece
}

func (v *KrakenDepthUpdateValidator) IsErrOutdated(err error) bool {
	return err == domain.ErrOrderBookUpdateIsOutdated
}
