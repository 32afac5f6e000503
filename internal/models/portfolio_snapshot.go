package models

import (
	"time"
)

// PortfolioSnapshot is the cached result of a portfolio fetch for one
// wallet on one chain. The same address tracked on several chains gets
// one row per chain. Override mutations flag matching rows
// NeedsRefresh; a background job recomputes them.
type PortfolioSnapshot struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:uniq_user_wallet_snapshot;not null" json:"user_id"`
	WalletAddress string    `gorm:"uniqueIndex:uniq_user_wallet_snapshot;not null" json:"wallet_address"`
	Chain         string    `gorm:"uniqueIndex:uniq_user_wallet_snapshot;not null" json:"chain"`
	Data          JSON      `gorm:"type:jsonb" json:"data"`
	TotalValueUSD float64   `json:"total_value_usd"`
	NeedsRefresh  bool      `gorm:"default:false;index" json:"needs_refresh"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
