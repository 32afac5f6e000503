package repositories

import (
	"context"
	"errors"

	"folio/internal/models"
)

var (
	ErrOverrideNotFound = errors.New("override not found")
	ErrOverrideConflict = errors.New("active override already exists")
)

// OverrideKey is the compound key an active override is unique under.
// ContractAddress takes precedence for matching; Symbol is used only for
// legacy symbol overrides that never recorded a contract address.
type OverrideKey struct {
	UserID          uint
	ContractAddress string
	Symbol          string
	Chain           string
	OverrideType    string
	WalletAddress   *string
}

// OverrideRepository defines the interface for token override persistence.
// Overrides are soft-deleted only: mutations flip IsActive, never remove rows.
type OverrideRepository interface {
	// GetActive returns active rows for the user scoped to walletAddress.
	// With includeGlobal, rows with a NULL wallet_address are included as
	// well. A nil walletAddress returns only global rows.
	GetActive(ctx context.Context, userID uint, walletAddress *string, includeGlobal bool) ([]models.TokenOverride, error)

	// ReplaceActive soft-deletes the current active row for the override's
	// compound key and inserts the new row, atomically.
	ReplaceActive(ctx context.Context, o *models.TokenOverride) error

	// Deactivate soft-deletes the single active row matching the key.
	// Returns the number of rows affected.
	Deactivate(ctx context.Context, key OverrideKey) (int64, error)

	// DeactivateWallet soft-deletes every active row scoped to the wallet.
	// Global rows are never touched.
	DeactivateWallet(ctx context.Context, userID uint, walletAddress string) (int64, error)

	// ListByUser returns the full override history (active and inactive)
	// for audit display, newest first.
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.TokenOverride, int64, error)
}
