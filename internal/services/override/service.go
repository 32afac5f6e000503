package override

import (
	"context"
	"fmt"
	"time"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/models"
	"folio/internal/repositories"
)

type service struct {
	repo      repositories.OverrideRepository
	snapshots SnapshotMarker
}

// NewService creates a new override service.
func NewService(repo repositories.OverrideRepository, snapshots SnapshotMarker) Service {
	if repo == nil {
		panic("override repo is required")
	}
	return &service{
		repo:      repo,
		snapshots: snapshots,
	}
}

func (s *service) Apply(ctx context.Context, userID uint, req MutationRequest) error {
	switch req.Action {
	case models.OverrideActionUpsert:
		return s.Upsert(ctx, userID, req)
	case models.OverrideActionDelete:
		return s.Delete(ctx, userID, req)
	case models.OverrideActionBulkDelete:
		if req.WalletAddress == nil {
			return apperrors.Validation("bulk_delete requires walletAddress")
		}
		return s.BulkDelete(ctx, userID, *req.WalletAddress)
	default:
		return apperrors.ErrInvalidOverrideAction
	}
}

func (s *service) Upsert(ctx context.Context, userID uint, req MutationRequest) error {
	row := &models.TokenOverride{
		UserID:          userID,
		ContractAddress: req.ContractAddress,
		Symbol:          req.Symbol,
		Chain:           req.Chain,
		OverrideType:    req.OverrideType,
		OverrideValue:   req.OverrideValue,
		WalletAddress:   req.WalletAddress,
		IsActive:        true,
		Action:          models.OverrideActionUpsert,
	}

	if err := s.repo.ReplaceActive(ctx, row); err != nil {
		if err == repositories.ErrOverrideConflict {
			return apperrors.ErrOverrideConflict
		}
		return fmt.Errorf("failed to upsert override: %w", err)
	}

	s.markStale(userID, req.WalletAddress)
	return nil
}

func (s *service) Delete(ctx context.Context, userID uint, req MutationRequest) error {
	key := repositories.OverrideKey{
		UserID:          userID,
		ContractAddress: req.ContractAddress,
		Symbol:          req.Symbol,
		Chain:           req.Chain,
		OverrideType:    req.OverrideType,
		WalletAddress:   req.WalletAddress,
	}

	affected, err := s.repo.Deactivate(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrOverrideNotFound
	}

	s.markStale(userID, req.WalletAddress)
	return nil
}

func (s *service) BulkDelete(ctx context.Context, userID uint, walletAddress string) error {
	if _, err := s.repo.DeactivateWallet(ctx, userID, walletAddress); err != nil {
		return fmt.Errorf("failed to bulk delete overrides: %w", err)
	}

	s.markStale(userID, &walletAddress)
	return nil
}

func (s *service) History(ctx context.Context, userID uint, offset, limit int) ([]models.TokenOverride, int64, error) {
	return s.repo.ListByUser(ctx, userID, offset, limit)
}

// markStale flags cached portfolio rows for recomputation. Best-effort
// and fire-and-forget: a failure here never surfaces to the caller.
func (s *service) markStale(userID uint, walletAddress *string) {
	if s.snapshots == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.snapshots.MarkNeedsRefresh(ctx, userID, walletAddress); err != nil {
			logger.GetLogger().WithError(err).Debug("failed to flag snapshots for refresh")
		}
	}()
}
