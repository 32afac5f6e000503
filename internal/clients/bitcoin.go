package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"folio/internal/config"
)

// BitcoinClient fetches a single address balance from a
// blockchain.info-compatible endpoint.
type BitcoinClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewBitcoinClient() *BitcoinClient {
	return &BitcoinClient{
		BaseURL:    config.GetEnv("BITCOIN_API_URL", "https://blockchain.info"),
		HTTPClient: newHTTPClient(),
	}
}

// AddressBalance returns the confirmed balance for a BTC address in satoshis.
func (c *BitcoinClient) AddressBalance(ctx context.Context, address string) (*BitcoinBalance, error) {
	u := fmt.Sprintf("%s/balance?active=%s", c.BaseURL, url.QueryEscape(address))

	var resp map[string]struct {
		FinalBalance int64 `json:"final_balance"`
	}
	if err := getJSON(ctx, c.HTTPClient, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("bitcoin balance: %w", err)
	}

	entry, ok := resp[address]
	if !ok {
		return nil, fmt.Errorf("bitcoin balance: address %s missing from response", address)
	}
	return &BitcoinBalance{Address: address, Satoshis: entry.FinalBalance}, nil
}
