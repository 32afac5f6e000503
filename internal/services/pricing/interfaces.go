package pricing

import (
	"context"
	"time"

	"folio/internal/clients"
)

// Service provides USD prices keyed by coingecko id, with a Coinbase
// spot-price fallback for symbols CoinGecko cannot quote.
type Service interface {
	// GetPrices returns USD prices for the given coingecko ids. Ids with
	// no available quote are absent from the map, not an error.
	GetPrices(ctx context.Context, ids []string) (map[string]float64, error)

	// GetPrice returns the USD price for a single id, falling back to a
	// Coinbase spot lookup by symbol when CoinGecko has no quote.
	GetPrice(ctx context.Context, id, symbol string) (float64, error)

	// ResolveID maps a ticker symbol onto a coingecko id using the
	// cached coins/list catalogue. Returns "" when unknown.
	ResolveID(ctx context.Context, symbol string) (string, error)
}

// CoinGeckoAPI is the slice of the CoinGecko client the service uses.
type CoinGeckoAPI interface {
	SimplePrice(ctx context.Context, ids []string) (map[string]float64, error)
	CoinsList(ctx context.Context) ([]clients.CoinListEntry, error)
}

// CoinbaseAPI is the fallback spot-price source.
type CoinbaseAPI interface {
	SpotPrice(ctx context.Context, symbol string) (float64, error)
}

// Cache is the slice of the cache service the pricing layer uses.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	PriceKey(coinID string) string
	CoinListKey() string
}
