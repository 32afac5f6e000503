package portfolio

import (
	"context"
	"time"

	"folio/internal/clients"
	"folio/internal/models"
	"folio/internal/services/override"
)

// Service fetches, prices and caches wallet portfolios.
type Service interface {
	// GetPortfolio returns the priced token list for one wallet, serving
	// a cached copy when one is fresh.
	GetPortfolio(ctx context.Context, userID uint, walletAddress, chain string) (*Portfolio, error)

	// GetDashboard aggregates every tracked wallet of the user.
	GetDashboard(ctx context.Context, userID uint) (*Dashboard, error)

	// RefreshSnapshot recomputes one flagged snapshot and clears its flag.
	RefreshSnapshot(ctx context.Context, snapshot models.PortfolioSnapshot) error
}

// BalanceFetcher returns the raw provider balances for a wallet.
type BalanceFetcher interface {
	FetchBalances(ctx context.Context, address, chain string) (clients.ChainBalance, error)
}

// OverrideResolver is the slice of the override service the aggregator
// consumes.
type OverrideResolver interface {
	Resolve(ctx context.Context, userID uint, walletAddress *string, includeGlobal bool) (override.ResolvedOverrides, error)
}

// PriceSource is the slice of the pricing service the aggregator consumes.
type PriceSource interface {
	GetPrices(ctx context.Context, ids []string) (map[string]float64, error)
	GetPrice(ctx context.Context, id, symbol string) (float64, error)
	ResolveID(ctx context.Context, symbol string) (string, error)
}

// WalletLister enumerates a user's tracked wallets for the dashboard.
type WalletLister interface {
	List(ctx context.Context, userID uint) ([]models.TrackedWallet, error)
}

// Cache is the slice of the cache service the portfolio layer uses.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	PortfolioKey(userID uint, walletAddress, chain string) string
}
