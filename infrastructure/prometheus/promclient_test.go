package promclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	BookDeltasEmitted.WithLabelValues("TEST_FEED", "BTC-USD").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if m.GetCounter() != nil {
				values[f.GetName()] += m.GetCounter().GetValue()
			}
		}
	}

	assert.Contains(t, values, "cryptofeed_book_deltas_total")
	assert.Equal(t, float64(1), values["cryptofeed_book_deltas_total"])
}
