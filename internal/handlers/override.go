package handlers

import (
	"errors"
	"strconv"

	apperrors "folio/internal/errors"
	"folio/internal/services/override"
	"folio/internal/utils"
	"folio/internal/utils/pagination"
	"folio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type OverrideHandler struct {
	overrideService override.Service
}

func NewOverrideHandler(overrideService override.Service) *OverrideHandler {
	return &OverrideHandler{
		overrideService: overrideService,
	}
}

// GetOverrides resolves the caller's overrides into the symbol and
// address lookup maps. Query params: wallet_address, include_global.
func (h *OverrideHandler) GetOverrides(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var walletAddress *string
	if wa := c.Query("wallet_address"); wa != "" {
		walletAddress = &wa
	}
	includeGlobal := true
	if ig := c.Query("include_global"); ig != "" {
		includeGlobal, _ = strconv.ParseBool(ig)
	}

	resolved, err := h.overrideService.Resolve(c.Context(), claims.UserID, walletAddress, includeGlobal)
	if err != nil {
		return utils.InternalError(c, "failed to fetch overrides")
	}

	return utils.SuccessRaw(c, fiber.Map{
		"symbolOverrides":  resolved.Symbols,
		"addressOverrides": resolved.Addresses,
	})
}

// PostOverride applies an upsert, delete or bulk_delete mutation.
func (h *OverrideHandler) PostOverride(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req override.MutationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := validation.ValidateOverrideMutation(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := h.overrideService.Apply(c.Context(), claims.UserID, req); err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			switch domainErr.Code {
			case apperrors.CodeNotFound:
				return utils.NotFound(c, domainErr.Message)
			case apperrors.CodeValidation:
				return utils.BadRequest(c, domainErr.Message)
			}
		}
		return utils.InternalError(c, "failed to apply override")
	}

	return utils.Success(c, fiber.Map{"action": req.Action})
}

// GetOverrideHistory lists the caller's override rows, soft-deleted
// rows included, newest first.
func (h *OverrideHandler) GetOverrideHistory(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)
	rows, total, err := h.overrideService.History(c.Context(), claims.UserID, p.Offset, p.Limit)
	if err != nil {
		return utils.InternalError(c, "failed to list overrides")
	}
	p.Total = total

	return utils.SuccessRaw(c, pagination.Response(p, rows))
}
