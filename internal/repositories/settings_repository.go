package repositories

import (
	"context"
	"errors"

	"folio/internal/models"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository persists per-user settings blobs, one row per
// (user, settings_type).
type SettingsRepository interface {
	Get(ctx context.Context, userID uint, settingsType string) (*models.WalletSettings, error)
	Save(ctx context.Context, settings *models.WalletSettings) error
}
