package validation

import (
	"strings"
	"testing"

	"folio/internal/errors"
	"folio/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateTrackedWallet(t *testing.T) {
	tests := []struct {
		name    string
		wallet  models.TrackedWallet
		wantErr bool
	}{
		{
			name:   "valid ethereum wallet",
			wallet: models.TrackedWallet{Address: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", Chain: models.ChainEthereum},
		},
		{
			name:   "valid solana wallet",
			wallet: models.TrackedWallet{Address: "DYw8jCTfwHNRJhhmFcbXvVDTqWMEVFBX6ZKUmG5CNSKK", Chain: models.ChainSolana},
		},
		{
			name:   "valid bitcoin wallet",
			wallet: models.TrackedWallet{Address: "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", Chain: models.ChainBitcoin},
		},
		{
			name:    "blank address",
			wallet:  models.TrackedWallet{Address: "   ", Chain: models.ChainEthereum},
			wantErr: true,
		},
		{
			name:    "unsupported chain",
			wallet:  models.TrackedWallet{Address: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", Chain: "tron"},
			wantErr: true,
		},
		{
			name:    "short EVM address",
			wallet:  models.TrackedWallet{Address: "0x742d35", Chain: models.ChainPolygon},
			wantErr: true,
		},
		{
			name:    "EVM address without prefix",
			wallet:  models.TrackedWallet{Address: "742d35Cc6634C0532925a3b844Bc454e4438f44e", Chain: models.ChainBSC},
			wantErr: true,
		},
		{
			name: "oversized label",
			wallet: models.TrackedWallet{
				Address: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
				Chain:   models.ChainEthereum,
				Label:   strings.Repeat("x", 65),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrackedWallet(tt.wallet)
			if tt.wantErr {
				assert.Error(t, err)
				var domainErr *errors.DomainError
				assert.ErrorAs(t, err, &domainErr)
				assert.Equal(t, errors.CodeValidation, domainErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsEVMChain(t *testing.T) {
	assert.True(t, IsEVMChain(models.ChainEthereum))
	assert.True(t, IsEVMChain(models.ChainArbitrum))
	assert.True(t, IsEVMChain(models.ChainBase))
	assert.False(t, IsEVMChain(models.ChainSolana))
	assert.False(t, IsEVMChain(models.ChainBitcoin))
	assert.False(t, IsEVMChain(models.ChainCosmos))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("hunter2!hunter2"))
	assert.False(t, ValidPassword("short!"))
	assert.False(t, ValidPassword("longbutplain1234"))
}
