package handlers

import (
	"errors"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/services/wallet"
	"folio/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// ListWallets returns the caller's tracked wallets.
func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallets, err := h.walletService.List(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list wallets")
	}
	return utils.Success(c, fiber.Map{"wallets": wallets})
}

// AddWallet registers a new tracked wallet address.
func (h *WalletHandler) AddWallet(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.TrackedWallet
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	added, err := h.walletService.Add(c.Context(), claims.UserID, input)
	if err != nil {
		if errors.Is(err, wallet.ErrDuplicateWallet) {
			return utils.BadRequest(c, "wallet already tracked")
		}
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return utils.BadRequest(c, domainErr.Message)
		}
		return utils.InternalError(c, "failed to add wallet")
	}
	return utils.Success(c, fiber.Map{"wallet": added})
}

// UpdateWallet changes a tracked wallet's display fields.
func (h *WalletHandler) UpdateWallet(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.TrackedWallet
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	updated, err := h.walletService.Update(c.Context(), claims.UserID, c.Params("id"), input)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return utils.NotFound(c, "wallet not found")
		}
		return utils.InternalError(c, "failed to update wallet")
	}
	return utils.Success(c, fiber.Map{"wallet": updated})
}

// RemoveWallet deletes a tracked wallet from the registry.
func (h *WalletHandler) RemoveWallet(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.walletService.Remove(c.Context(), claims.UserID, c.Params("id")); err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return utils.NotFound(c, "wallet not found")
		}
		return utils.InternalError(c, "failed to remove wallet")
	}
	return utils.Success(c, fiber.Map{"removed": true})
}
