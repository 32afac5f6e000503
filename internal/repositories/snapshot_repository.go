package repositories

import (
	"context"

	"folio/internal/models"
)

// SnapshotRepository persists portfolio snapshots, one row per
// (user, wallet_address, chain). Override mutations flag rows
// NeedsRefresh; the refresh worker picks them up.
type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *models.PortfolioSnapshot) error

	// MarkNeedsRefresh flags the user's snapshots for recomputation.
	// A nil walletAddress flags all of the user's snapshots.
	MarkNeedsRefresh(ctx context.Context, userID uint, walletAddress *string) (int64, error)

	// ListNeedsRefresh returns up to limit flagged snapshots across users.
	ListNeedsRefresh(ctx context.Context, limit int) ([]models.PortfolioSnapshot, error)

	// ClearNeedsRefresh unsets the flag after a successful recompute.
	ClearNeedsRefresh(ctx context.Context, id uint) error
}
