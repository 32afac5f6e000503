package clients

import (
	"context"
	"fmt"
	"net/http"

	"folio/internal/config"
	"folio/internal/models"
)

// MoralisClient fetches ERC-20 holdings per wallet per EVM chain.
type MoralisClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewMoralisClient() *MoralisClient {
	return &MoralisClient{
		BaseURL:    config.GetEnv("MORALIS_API_URL", "https://deep-index.moralis.io/api/v2.2"),
		APIKey:     config.GetEnv("MORALIS_API_KEY", ""),
		HTTPClient: newHTTPClient(),
	}
}

// moralisChain maps tracker chain names onto Moralis chain parameters.
var moralisChain = map[string]string{
	models.ChainEthereum: "eth",
	models.ChainPolygon:  "polygon",
	models.ChainBSC:      "bsc",
	models.ChainArbitrum: "arbitrum",
	models.ChainBase:     "base",
}

// WalletTokens returns the ERC-20 balances for a wallet address.
func (c *MoralisClient) WalletTokens(ctx context.Context, address, chain string) ([]EVMToken, error) {
	param, ok := moralisChain[chain]
	if !ok {
		return nil, fmt.Errorf("moralis does not support chain %q", chain)
	}

	u := fmt.Sprintf("%s/%s/erc20?chain=%s", c.BaseURL, address, param)
	headers := map[string]string{"X-API-Key": c.APIKey}

	var tokens []EVMToken
	if err := getJSON(ctx, c.HTTPClient, u, headers, &tokens); err != nil {
		return nil, fmt.Errorf("moralis wallet tokens: %w", err)
	}
	return tokens, nil
}
