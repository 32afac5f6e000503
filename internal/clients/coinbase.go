package clients

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"folio/internal/config"
)

// CoinbaseClient is the fallback price source when CoinGecko has no
// quote for a symbol.
type CoinbaseClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewCoinbaseClient() *CoinbaseClient {
	return &CoinbaseClient{
		BaseURL:    config.GetEnv("COINBASE_API_URL", "https://api.coinbase.com"),
		HTTPClient: newHTTPClient(),
	}
}

// SpotPrice returns the USD spot price for a ticker symbol.
func (c *CoinbaseClient) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	pair := strings.ToUpper(symbol) + "-USD"
	u := fmt.Sprintf("%s/v2/prices/%s/spot", c.BaseURL, pair)

	var resp struct {
		Data struct {
			Base     string `json:"base"`
			Currency string `json:"currency"`
			Amount   string `json:"amount"`
		} `json:"data"`
	}
	if err := getJSON(ctx, c.HTTPClient, u, nil, &resp); err != nil {
		return 0, fmt.Errorf("coinbase spot price: %w", err)
	}

	price, err := strconv.ParseFloat(resp.Data.Amount, 64)
	if err != nil {
		return 0, fmt.Errorf("coinbase returned non-numeric amount %q", resp.Data.Amount)
	}
	return price, nil
}
