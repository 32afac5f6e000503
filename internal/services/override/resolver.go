package override

import (
	"context"

	"folio/internal/logger"
	"folio/internal/models"
)

func (s *service) Resolve(ctx context.Context, userID uint, walletAddress *string, includeGlobal bool) (ResolvedOverrides, error) {
	rows, err := s.repo.GetActive(ctx, userID, walletAddress, includeGlobal)
	if err != nil {
		logger.GetLogger().WithError(err).Warn("override query failed")
		return ResolvedOverrides{}, ErrFetchFailed
	}
	return buildResolved(rows), nil
}

// buildResolved routes rows into the symbol and address maps. Global
// rows are applied first so a wallet-scoped row targeting the same key
// wins by overwriting it.
func buildResolved(rows []models.TokenOverride) ResolvedOverrides {
	res := NewResolvedOverrides()
	for _, row := range rows {
		if row.IsGlobal() {
			applyRow(res, row)
		}
	}
	for _, row := range rows {
		if !row.IsGlobal() {
			applyRow(res, row)
		}
	}
	return res
}

func applyRow(res ResolvedOverrides, row models.TokenOverride) {
	switch row.OverrideType {
	case models.OverrideTypeSymbol:
		// ResolverKey falls back to the contract address for legacy
		// rows without a recorded symbol.
		res.Symbols[row.ResolverKey()] = row.OverrideValue
	case models.OverrideTypeAddress:
		res.Addresses[row.ContractAddress] = row.OverrideValue
	}
}
