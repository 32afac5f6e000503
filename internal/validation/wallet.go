package validation

import (
	"regexp"
	"strings"

	"folio/internal/errors"
	"folio/internal/models"
)

var evmAddressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

var supportedChains = map[string]bool{
	models.ChainEthereum: true,
	models.ChainPolygon:  true,
	models.ChainBSC:      true,
	models.ChainArbitrum: true,
	models.ChainBase:     true,
	models.ChainSolana:   true,
	models.ChainBitcoin:  true,
	models.ChainCosmos:   true,
}

// IsEVMChain reports whether the chain uses 0x-style addresses.
func IsEVMChain(chain string) bool {
	switch chain {
	case models.ChainEthereum, models.ChainPolygon, models.ChainBSC,
		models.ChainArbitrum, models.ChainBase:
		return true
	}
	return false
}

// ValidateTrackedWallet checks a wallet registration request.
func ValidateTrackedWallet(w models.TrackedWallet) error {
	if strings.TrimSpace(w.Address) == "" {
		return errors.Validation("address is required")
	}
	if !supportedChains[w.Chain] {
		return errors.ErrUnsupportedChain
	}
	if IsEVMChain(w.Chain) && !evmAddressRegex.MatchString(w.Address) {
		return errors.Validation("invalid EVM address")
	}
	if len(w.Label) > 64 {
		return errors.Validation("label must be at most 64 characters")
	}
	return nil
}
