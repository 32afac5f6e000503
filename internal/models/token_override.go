package models

import (
	"time"
)

// Override types
const (
	OverrideTypeSymbol  = "symbol"
	OverrideTypeAddress = "address"
)

// Override audit actions
const (
	OverrideActionUpsert     = "upsert"
	OverrideActionUpdate     = "update"
	OverrideActionDelete     = "delete"
	OverrideActionBulkDelete = "bulk_delete"
)

// TokenOverride maps an on-chain token identifier (symbol or contract
// address) to a canonical price-provider id. A nil OverrideValue is a
// meaningful state: the token is excluded from price lookup entirely.
// Rows are never hard-deleted; IsActive=false preserves history.
//
// WalletAddress nil means the override applies to all of the user's
// wallets; a non-nil value scopes it to one wallet.
type TokenOverride struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	UserID          uint   `gorm:"index;not null" json:"user_id"`
	ContractAddress string `gorm:"index" json:"contract_address"`
	Symbol          string `gorm:"index" json:"symbol"`
	Chain           string `gorm:"not null" json:"chain"`
	OverrideType    string `gorm:"not null" json:"override_type"`
	// nil = exclude from price lookup, non-nil = canonical coingecko id
	OverrideValue *string   `json:"override_value"`
	WalletAddress *string   `gorm:"index" json:"wallet_address"`
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`
	Action        string    `gorm:"default:'upsert'" json:"action"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsGlobal reports whether the override applies across all wallets.
func (o *TokenOverride) IsGlobal() bool {
	return o.WalletAddress == nil
}

// ResolverKey returns the map key the override resolves under: the
// symbol for symbol overrides, falling back to the contract address
// for legacy rows that never recorded a symbol.
func (o *TokenOverride) ResolverKey() string {
	if o.OverrideType == OverrideTypeSymbol && o.Symbol != "" {
		return o.Symbol
	}
	return o.ContractAddress
}
