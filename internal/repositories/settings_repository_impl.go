package repositories

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, userID uint, settingsType string) (*models.WalletSettings, error) {
	var settings models.WalletSettings
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND settings_type = ?", userID, settingsType).
		First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.WalletSettings) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "settings_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"settings_data", "updated_at"}),
		}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
