package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"folio/internal/config"
)

// CoinGeckoClient wraps the two CoinGecko endpoints the tracker uses:
// simple/price for batch USD quotes and coins/list for symbol-to-id
// resolution.
type CoinGeckoClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		BaseURL:    config.GetEnv("COINGECKO_API_URL", "https://api.coingecko.com/api/v3"),
		APIKey:     config.GetEnv("COINGECKO_API_KEY", ""),
		HTTPClient: newHTTPClient(),
	}
}

// CoinListEntry is one row of the coins/list response.
type CoinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func (c *CoinGeckoClient) headers() map[string]string {
	if c.APIKey == "" {
		return nil
	}
	return map[string]string{"x-cg-demo-api-key": c.APIKey}
}

// SimplePrice returns the USD price for each coingecko id. Ids missing
// from the response are simply absent from the returned map.
func (c *CoinGeckoClient) SimplePrice(ctx context.Context, ids []string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.BaseURL, url.QueryEscape(strings.Join(ids, ",")))

	var raw map[string]map[string]float64
	if err := getJSON(ctx, c.HTTPClient, u, c.headers(), &raw); err != nil {
		return nil, fmt.Errorf("coingecko simple/price: %w", err)
	}

	prices := make(map[string]float64, len(raw))
	for id, quote := range raw {
		if usd, ok := quote["usd"]; ok {
			prices[id] = usd
		}
	}
	return prices, nil
}

// CoinsList returns the full id/symbol/name catalogue.
func (c *CoinGeckoClient) CoinsList(ctx context.Context) ([]CoinListEntry, error) {
	u := c.BaseURL + "/coins/list"

	var entries []CoinListEntry
	if err := getJSON(ctx, c.HTTPClient, u, c.headers(), &entries); err != nil {
		return nil, fmt.Errorf("coingecko coins/list: %w", err)
	}
	return entries, nil
}
