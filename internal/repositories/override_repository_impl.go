package repositories

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type overrideRepository struct {
	db *gorm.DB
}

func NewOverrideRepository(db *gorm.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

func (r *overrideRepository) GetActive(ctx context.Context, userID uint, walletAddress *string, includeGlobal bool) ([]models.TokenOverride, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true)

	switch {
	case walletAddress == nil:
		q = q.Where("wallet_address IS NULL")
	case includeGlobal:
		q = q.Where("wallet_address = ? OR wallet_address IS NULL", *walletAddress)
	default:
		q = q.Where("wallet_address = ?", *walletAddress)
	}

	var rows []models.TokenOverride
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	return rows, nil
}

func (r *overrideRepository) ReplaceActive(ctx context.Context, o *models.TokenOverride) error {
	key := OverrideKey{
		UserID:          o.UserID,
		ContractAddress: o.ContractAddress,
		Symbol:          o.Symbol,
		Chain:           o.Chain,
		OverrideType:    o.OverrideType,
		WalletAddress:   o.WalletAddress,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := scopeKey(tx.Model(&models.TokenOverride{}), key).
			Updates(map[string]interface{}{
				"is_active": false,
				"action":    models.OverrideActionUpdate,
			})
		if res.Error != nil {
			return res.Error
		}
		return tx.Create(o).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrOverrideConflict
		}
		return fmt.Errorf("failed to upsert override: %w", err)
	}
	return nil
}

func (r *overrideRepository) Deactivate(ctx context.Context, key OverrideKey) (int64, error) {
	res := scopeKey(r.db.WithContext(ctx).Model(&models.TokenOverride{}), key).
		Updates(map[string]interface{}{
			"is_active": false,
			"action":    models.OverrideActionDelete,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to deactivate override: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *overrideRepository) DeactivateWallet(ctx context.Context, userID uint, walletAddress string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.TokenOverride{}).
		Where("user_id = ? AND wallet_address = ? AND is_active = ?", userID, walletAddress, true).
		Updates(map[string]interface{}{
			"is_active": false,
			"action":    models.OverrideActionBulkDelete,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to bulk delete overrides: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *overrideRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.TokenOverride, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.TokenOverride{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count overrides: %w", err)
	}

	var rows []models.TokenOverride
	err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list overrides: %w", err)
	}
	return rows, total, nil
}

// scopeKey narrows a query to the single active row the key identifies.
// Contract address wins when present; legacy symbol rows match by symbol.
func scopeKey(q *gorm.DB, key OverrideKey) *gorm.DB {
	q = q.Where("user_id = ? AND chain = ? AND override_type = ? AND is_active = ?",
		key.UserID, key.Chain, key.OverrideType, true)

	if key.ContractAddress != "" {
		q = q.Where("contract_address = ?", key.ContractAddress)
	} else {
		q = q.Where("symbol = ?", key.Symbol)
	}

	if key.WalletAddress == nil {
		q = q.Where("wallet_address IS NULL")
	} else {
		q = q.Where("wallet_address = ?", *key.WalletAddress)
	}
	return q
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
