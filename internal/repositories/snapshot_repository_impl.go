package repositories

import (
	"context"
	"fmt"

	"folio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Upsert(ctx context.Context, snapshot *models.PortfolioSnapshot) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "wallet_address"}, {Name: "chain"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"data", "total_value_usd", "needs_refresh", "updated_at",
			}),
		}).
		Create(snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepository) MarkNeedsRefresh(ctx context.Context, userID uint, walletAddress *string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.PortfolioSnapshot{}).
		Where("user_id = ?", userID)
	if walletAddress != nil {
		q = q.Where("wallet_address = ?", *walletAddress)
	}
	res := q.Update("needs_refresh", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark snapshots: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *snapshotRepository) ListNeedsRefresh(ctx context.Context, limit int) ([]models.PortfolioSnapshot, error) {
	var rows []models.PortfolioSnapshot
	err := r.db.WithContext(ctx).
		Where("needs_refresh = ?", true).
		Order("updated_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list flagged snapshots: %w", err)
	}
	return rows, nil
}

func (r *snapshotRepository) ClearNeedsRefresh(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.PortfolioSnapshot{}).
		Where("id = ?", id).
		Update("needs_refresh", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear refresh flag: %w", err)
	}
	return nil
}
