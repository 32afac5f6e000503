package models

import (
	"github.com/shopspring/decimal"
)

// TokenBalance is the normalized, display-ready shape every provider
// response is mapped into. It is ephemeral: recomputed on each fetch,
// persisted only inside portfolio snapshot blobs.
type TokenBalance struct {
	TokenAddress string          `json:"token_address"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	Decimals     int             `json:"decimals"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	ValueUSD     decimal.Decimal `json:"value_usd"`
	LogoURL      string          `json:"logo_url,omitempty"`
	// Excluded marks tokens whose override value is an explicit nil:
	// shown with their balance but left out of price lookup and totals.
	Excluded bool `json:"excluded,omitempty"`
}
