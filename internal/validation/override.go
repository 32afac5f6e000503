package validation

import (
	"folio/internal/errors"
	"folio/internal/models"
	"folio/internal/services/override"
)

// ValidateOverrideMutation checks a POST /api/overrides body before it
// reaches the override service. Violations map to 400 responses.
func ValidateOverrideMutation(req override.MutationRequest) error {
	switch req.Action {
	case models.OverrideActionUpsert, models.OverrideActionDelete:
	case models.OverrideActionBulkDelete:
		if req.WalletAddress == nil || *req.WalletAddress == "" {
			return &errors.DomainError{
				Code:    errors.CodeValidation,
				Message: "bulk_delete requires walletAddress",
			}
		}
		return nil
	default:
		return errors.ErrInvalidOverrideAction
	}

	switch req.OverrideType {
	case models.OverrideTypeSymbol:
		if req.Symbol == "" && req.ContractAddress == "" {
			return &errors.DomainError{
				Code:    errors.CodeValidation,
				Message: "symbol override requires symbol or contractAddress",
			}
		}
	case models.OverrideTypeAddress:
		if req.ContractAddress == "" {
			return &errors.DomainError{
				Code:    errors.CodeValidation,
				Message: "address override requires contractAddress",
			}
		}
	default:
		return errors.ErrInvalidOverrideType
	}

	if req.Chain == "" {
		return &errors.DomainError{
			Code:    errors.CodeValidation,
			Message: "chain is required",
		}
	}

	return nil
}
