package override

import (
	"context"

	"folio/internal/models"
)

// Service resolves and mutates token overrides.
type Service interface {
	// Resolve merges wallet-scoped and global overrides into the two
	// lookup maps. Wallet-scoped rows shadow global rows on the same key.
	Resolve(ctx context.Context, userID uint, walletAddress *string, includeGlobal bool) (ResolvedOverrides, error)

	// Apply routes a mutation request by its action field.
	Apply(ctx context.Context, userID uint, req MutationRequest) error

	Upsert(ctx context.Context, userID uint, req MutationRequest) error
	Delete(ctx context.Context, userID uint, req MutationRequest) error
	BulkDelete(ctx context.Context, userID uint, walletAddress string) error

	// History lists the user's override rows, active and soft-deleted.
	History(ctx context.Context, userID uint, offset, limit int) ([]models.TokenOverride, int64, error)
}

// SnapshotMarker flags cached portfolio rows for recomputation after a
// mutation. Implemented by the snapshot repository.
type SnapshotMarker interface {
	MarkNeedsRefresh(ctx context.Context, userID uint, walletAddress *string) (int64, error)
}
