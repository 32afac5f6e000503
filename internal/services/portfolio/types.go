package portfolio

import (
	"time"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// Portfolio is the priced, display-ready token list for one wallet.
type Portfolio struct {
	WalletAddress string                `json:"wallet_address"`
	Chain         string                `json:"chain"`
	Tokens        []models.TokenBalance `json:"tokens"`
	TotalValueUSD decimal.Decimal       `json:"total_value_usd"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// DashboardEntry pairs a tracked wallet with its portfolio, or with the
// error that kept it from loading. One failing wallet never fails the
// whole dashboard.
type DashboardEntry struct {
	Wallet    models.TrackedWallet `json:"wallet"`
	Portfolio *Portfolio           `json:"portfolio,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// Dashboard aggregates every tracked wallet of a user.
type Dashboard struct {
	Wallets       []DashboardEntry `json:"wallets"`
	TotalValueUSD decimal.Decimal  `json:"total_value_usd"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// PricingPlan records, per token, the canonical price-provider id and
// whether an explicit nil override excludes it from price lookup.
type PricingPlan struct {
	IDs      []string
	Excluded []bool
}

// UniqueIDs returns the de-duplicated non-empty canonical ids of the plan.
func (p PricingPlan) UniqueIDs() []string {
	seen := make(map[string]bool, len(p.IDs))
	var ids []string
	for _, id := range p.IDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
