package krakenfutures

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const instrumentsEndpoint = "https://futures.kraken.com/derivatives/api/v3/instruments"

type InstrumentsAPI struct {
	endpoint string
	client   *http.Client
}

type instrumentsResponse struct {
	Result      string `json:"result"`
	Instruments []struct {
		Symbol    string `json:"symbol"`
		Tradeable bool   `json:"tradeable"`
	} `json:"instruments"`
}

func NewInstrumentsAPI(endpoint string) *InstrumentsAPI {
	if endpoint == "" {
		endpoint = instrumentsEndpoint
	}
	return &InstrumentsAPI{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Instruments returns the symbols listed on the exchange, upper-cased.
func (api *InstrumentsAPI) Instruments(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := api.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kraken futures: instruments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kraken futures: instruments: unexpected status %s", resp.Status)
	}

	var body instrumentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("kraken futures: instruments: %w", err)
	}

	instruments := make(map[string]string, len(body.Instruments))
	for _, instrument := range body.Instruments {
		symbol := strings.ToUpper(instrument.Symbol)
		instruments[symbol] = symbol
	}

	return instruments, nil
}
