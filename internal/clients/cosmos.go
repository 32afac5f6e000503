package clients

import (
	"context"
	"fmt"
	"net/http"

	"folio/internal/config"
)

// CosmosClient fetches bank-module balances from a Cosmos LCD endpoint.
type CosmosClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewCosmosClient() *CosmosClient {
	return &CosmosClient{
		BaseURL:    config.GetEnv("COSMOS_LCD_URL", "https://cosmos-rest.publicnode.com"),
		HTTPClient: newHTTPClient(),
	}
}

// Balances returns the coin balances held by a Cosmos address.
func (c *CosmosClient) Balances(ctx context.Context, address string) ([]CosmosBalance, error) {
	u := fmt.Sprintf("%s/cosmos/bank/v1beta1/balances/%s", c.BaseURL, address)

	var resp struct {
		Balances []struct {
			Denom  string `json:"denom"`
			Amount string `json:"amount"`
		} `json:"balances"`
	}
	if err := getJSON(ctx, c.HTTPClient, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("cosmos balances: %w", err)
	}

	out := make([]CosmosBalance, 0, len(resp.Balances))
	for _, b := range resp.Balances {
		cb := CosmosBalance{Denom: b.Denom, Amount: b.Amount, Exponent: 6}
		if b.Denom == "uatom" {
			cb.Symbol = "ATOM"
		}
		out = append(out, cb)
	}
	return out, nil
}
