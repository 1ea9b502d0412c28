package domain

import "errors"

var (
	// Gaps are logged; the book is re-synced by the next forced snapshot.
	ErrOrderBookUpdateIsOutOfSequece = errors.New("order book update is out of sequece")
	// should just skip them
	ErrOrderBookUpdateIsOutdated = errors.New("order book update is outdated")
)

type IDepthUpdateValidator interface {
	// if return nil, the update is valid
	IsValidUpd(seq int64, lastSeq int64) error
	IsErrOutOfSequece(err error) bool
	IsErrOutdated(err error) bool
}
