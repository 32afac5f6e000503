package models

import (
	"time"
)

// Settings types stored in wallet_settings
const (
	SettingsTypeWallets = "wallets"
)

// Supported chains for tracked wallets.
const (
	ChainEthereum = "eth"
	ChainPolygon  = "polygon"
	ChainBSC      = "bsc"
	ChainArbitrum = "arbitrum"
	ChainBase     = "base"
	ChainSolana   = "solana"
	ChainBitcoin  = "bitcoin"
	ChainCosmos   = "cosmos"
)

// WalletSettings is a generic per-user settings row. The tracked wallet
// list lives under SettingsType "wallets" as a JSON blob.
type WalletSettings struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:uniq_user_settings;not null" json:"user_id"`
	SettingsType string    `gorm:"uniqueIndex:uniq_user_settings;not null" json:"settings_type"`
	SettingsData JSON      `gorm:"type:jsonb" json:"settings_data"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TrackedWallet is one entry of the wallet list blob.
type TrackedWallet struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Label    string `json:"label"`
	Chain    string `json:"chain"`
	Expanded bool   `json:"expanded"`
}
