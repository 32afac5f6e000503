package portfolio

import (
	"fmt"

	"folio/internal/clients"
	"folio/internal/models"

	"github.com/shopspring/decimal"
)

const (
	bitcoinDecimals = 8
	solanaDecimals  = 9
)

// Normalize maps a provider-specific balance payload into the common
// TokenBalance shape. Pure: no I/O, no pricing. Raw integer amounts are
// scaled down by the token's decimals.
func Normalize(cb clients.ChainBalance) ([]models.TokenBalance, error) {
	switch cb.Kind {
	case clients.KindEVM:
		return normalizeEVM(cb.EVM)
	case clients.KindSolana:
		return normalizeSolana(cb.Solana)
	case clients.KindBitcoin:
		return normalizeBitcoin(cb.Bitcoin)
	case clients.KindCosmos:
		return normalizeCosmos(cb.Cosmos)
	default:
		return nil, fmt.Errorf("unknown chain balance kind %d", cb.Kind)
	}
}

func normalizeEVM(tokens []clients.EVMToken) ([]models.TokenBalance, error) {
	out := make([]models.TokenBalance, 0, len(tokens))
	for _, t := range tokens {
		raw, err := decimal.NewFromString(t.Balance)
		if err != nil {
			return nil, fmt.Errorf("invalid balance %q for token %s: %w", t.Balance, t.TokenAddress, err)
		}
		out = append(out, models.TokenBalance{
			TokenAddress: t.TokenAddress,
			Symbol:       t.Symbol,
			Name:         t.Name,
			Balance:      raw.Shift(int32(-t.Decimals)),
			Decimals:     t.Decimals,
			LogoURL:      t.Logo,
		})
	}
	return out, nil
}

func normalizeSolana(accounts []clients.SolanaTokenAccount) ([]models.TokenBalance, error) {
	out := make([]models.TokenBalance, 0, len(accounts))
	for _, a := range accounts {
		raw, err := decimal.NewFromString(a.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for mint %s: %w", a.Amount, a.Mint, err)
		}
		out = append(out, models.TokenBalance{
			TokenAddress: a.Mint,
			Symbol:       a.Symbol,
			Name:         a.Name,
			Balance:      raw.Shift(int32(-a.Decimals)),
			Decimals:     a.Decimals,
		})
	}
	return out, nil
}

func normalizeBitcoin(b *clients.BitcoinBalance) ([]models.TokenBalance, error) {
	if b == nil {
		return nil, fmt.Errorf("bitcoin payload is nil")
	}
	return []models.TokenBalance{{
		TokenAddress: b.Address,
		Symbol:       "BTC",
		Name:         "Bitcoin",
		Balance:      decimal.New(b.Satoshis, -bitcoinDecimals),
		Decimals:     bitcoinDecimals,
	}}, nil
}

func normalizeCosmos(balances []clients.CosmosBalance) ([]models.TokenBalance, error) {
	out := make([]models.TokenBalance, 0, len(balances))
	for _, b := range balances {
		raw, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for denom %s: %w", b.Amount, b.Denom, err)
		}
		symbol := b.Symbol
		if symbol == "" {
			symbol = b.Denom
		}
		out = append(out, models.TokenBalance{
			TokenAddress: b.Denom,
			Symbol:       symbol,
			Name:         b.Denom,
			Balance:      raw.Shift(int32(-b.Exponent)),
			Decimals:     b.Exponent,
		})
	}
	return out, nil
}
