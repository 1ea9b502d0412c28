package krakenfutures

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentsAPI_Instruments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","instruments":[{"symbol":"pi_xbtusd","tradeable":true},{"symbol":"fi_ethusd_200925","tradeable":true}]}`))
	}))
	defer srv.Close()

	api := NewInstrumentsAPI(srv.URL)

	instruments, err := api.Instruments(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"PI_XBTUSD":        "PI_XBTUSD",
		"FI_ETHUSD_200925": "FI_ETHUSD_200925",
	}, instruments)
}

func TestInstrumentsAPI_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewInstrumentsAPI(srv.URL).Instruments(context.Background())

	assert.Error(t, err)
}

func TestVocabulary(t *testing.T) {
	v := Vocabulary{}

	assert.Equal(t, "book", v.ChannelToExchange("l2_book"))
	assert.Equal(t, "book", v.ChannelToExchange("book_delta"))
	assert.Equal(t, "ticker_lite", v.ChannelToExchange("ticker"))
	assert.Equal(t, "funding", v.ChannelToExchange("funding"))
	assert.Equal(t, "PI_XBTUSD", v.PairToExchange("pi_xbtusd"))
	assert.Equal(t, "PI_XBTUSD", v.PairFromExchange("pi_xbtusd"))
}
