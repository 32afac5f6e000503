// Package wallet manages the user's registry of tracked wallet
// addresses, stored as a JSON blob in the wallet_settings table.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"folio/internal/models"
	"folio/internal/repositories"
	"folio/internal/validation"

	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context, userID uint) ([]models.TrackedWallet, error)
	Add(ctx context.Context, userID uint, w models.TrackedWallet) (*models.TrackedWallet, error)
	Update(ctx context.Context, userID uint, id string, w models.TrackedWallet) (*models.TrackedWallet, error)
	Remove(ctx context.Context, userID uint, id string) error
}

type service struct {
	settings repositories.SettingsRepository
}

// NewService creates a new wallet registry service.
func NewService(settings repositories.SettingsRepository) Service {
	if settings == nil {
		panic("settings repo is required")
	}
	return &service{settings: settings}
}

func (s *service) List(ctx context.Context, userID uint) ([]models.TrackedWallet, error) {
	return s.load(ctx, userID)
}

func (s *service) Add(ctx context.Context, userID uint, w models.TrackedWallet) (*models.TrackedWallet, error) {
	if err := validation.ValidateTrackedWallet(w); err != nil {
		return nil, err
	}

	wallets, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range wallets {
		if existing.Address == w.Address && existing.Chain == w.Chain {
			return nil, ErrDuplicateWallet
		}
	}

	w.ID = uuid.NewString()
	wallets = append(wallets, w)

	if err := s.save(ctx, userID, wallets); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *service) Update(ctx context.Context, userID uint, id string, w models.TrackedWallet) (*models.TrackedWallet, error) {
	wallets, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, existing := range wallets {
		if existing.ID != id {
			continue
		}
		// Address and chain are immutable; only display fields change.
		if w.Label != "" {
			wallets[i].Label = w.Label
		}
		wallets[i].Expanded = w.Expanded

		if err := s.save(ctx, userID, wallets); err != nil {
			return nil, err
		}
		updated := wallets[i]
		return &updated, nil
	}
	return nil, ErrWalletNotFound
}

func (s *service) Remove(ctx context.Context, userID uint, id string) error {
	wallets, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	for i, existing := range wallets {
		if existing.ID == id {
			wallets = append(wallets[:i], wallets[i+1:]...)
			return s.save(ctx, userID, wallets)
		}
	}
	return ErrWalletNotFound
}

func (s *service) load(ctx context.Context, userID uint) ([]models.TrackedWallet, error) {
	settings, err := s.settings.Get(ctx, userID, models.SettingsTypeWallets)
	if err != nil {
		if err == repositories.ErrSettingsNotFound {
			return []models.TrackedWallet{}, nil
		}
		return nil, fmt.Errorf("failed to load wallet settings: %w", err)
	}

	raw, ok := settings.SettingsData["wallets"]
	if !ok {
		return []models.TrackedWallet{}, nil
	}

	// The blob round-trips through JSON because SettingsData is a
	// generic map.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("corrupt wallet settings: %w", err)
	}
	var wallets []models.TrackedWallet
	if err := json.Unmarshal(data, &wallets); err != nil {
		return nil, fmt.Errorf("corrupt wallet settings: %w", err)
	}
	return wallets, nil
}

func (s *service) save(ctx context.Context, userID uint, wallets []models.TrackedWallet) error {
	// Normalize to []interface{} so reads see the same shape the
	// database returns.
	data, err := json.Marshal(wallets)
	if err != nil {
		return fmt.Errorf("failed to encode wallet settings: %w", err)
	}
	var generic []interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to encode wallet settings: %w", err)
	}

	return s.settings.Save(ctx, &models.WalletSettings{
		UserID:       userID,
		SettingsType: models.SettingsTypeWallets,
		SettingsData: models.JSON{"wallets": generic},
	})
}
