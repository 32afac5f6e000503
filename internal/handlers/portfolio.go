package handlers

import (
	"errors"

	"folio/internal/models"
	"folio/internal/services/override"
	"folio/internal/services/portfolio"
	"folio/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PortfolioHandler struct {
	portfolioService portfolio.Service
}

func NewPortfolioHandler(portfolioService portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// GetPortfolio returns the priced token list for one wallet address.
func (h *PortfolioHandler) GetPortfolio(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	address := c.Params("address")
	if address == "" {
		return utils.BadRequest(c, "wallet address is required")
	}
	chain := c.Query("chain", models.ChainEthereum)

	p, err := h.portfolioService.GetPortfolio(c.Context(), claims.UserID, address, chain)
	if err != nil {
		if errors.Is(err, portfolio.ErrBalanceFetchFailed) {
			return utils.BadGateway(c, "failed to fetch wallet balances")
		}
		if errors.Is(err, override.ErrFetchFailed) {
			return utils.InternalError(c, "failed to fetch overrides")
		}
		return utils.InternalError(c, "failed to build portfolio")
	}

	return utils.Success(c, p)
}

// GetDashboard aggregates portfolios across every tracked wallet.
func (h *PortfolioHandler) GetDashboard(c *fiber.Ctx) error {
	claims, err := utils.ExtractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	dashboard, err := h.portfolioService.GetDashboard(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, portfolio.ErrNoTrackedWallets) {
			return utils.NotFound(c, "no tracked wallets registered")
		}
		return utils.InternalError(c, "failed to build dashboard")
	}

	return utils.Success(c, dashboard)
}
