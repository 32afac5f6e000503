package portfolio

import (
	"context"
	"fmt"

	"folio/internal/clients"
	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/models"
	"folio/internal/validation"
)

// chainFetcher routes a balance fetch to the right provider per chain:
// Moralis for ERC-20 holdings plus an Alchemy native-balance call on
// EVM chains, chain RPC for Solana, a block explorer for Bitcoin and an
// LCD endpoint for Cosmos.
type chainFetcher struct {
	moralis *clients.MoralisClient
	alchemy *clients.AlchemyClient
	solana  *clients.SolanaRPCClient
	bitcoin *clients.BitcoinClient
	cosmos  *clients.CosmosClient
}

func NewChainFetcher(
	moralis *clients.MoralisClient,
	alchemy *clients.AlchemyClient,
	solana *clients.SolanaRPCClient,
	bitcoin *clients.BitcoinClient,
	cosmos *clients.CosmosClient,
) BalanceFetcher {
	return &chainFetcher{
		moralis: moralis,
		alchemy: alchemy,
		solana:  solana,
		bitcoin: bitcoin,
		cosmos:  cosmos,
	}
}

func (f *chainFetcher) FetchBalances(ctx context.Context, address, chain string) (clients.ChainBalance, error) {
	switch {
	case validation.IsEVMChain(chain):
		return f.fetchEVM(ctx, address, chain)
	case chain == models.ChainSolana:
		return f.fetchSolana(ctx, address)
	case chain == models.ChainBitcoin:
		return f.fetchBitcoin(ctx, address)
	case chain == models.ChainCosmos:
		return f.fetchCosmos(ctx, address)
	default:
		return clients.ChainBalance{}, apperrors.ErrUnsupportedChain
	}
}

// nativeSymbol maps an EVM chain to its gas token.
var nativeSymbol = map[string]struct{ symbol, name string }{
	models.ChainEthereum: {"ETH", "Ethereum"},
	models.ChainPolygon:  {"POL", "Polygon"},
	models.ChainBSC:      {"BNB", "BNB"},
	models.ChainArbitrum: {"ETH", "Ethereum"},
	models.ChainBase:     {"ETH", "Ethereum"},
}

func (f *chainFetcher) fetchEVM(ctx context.Context, address, chain string) (clients.ChainBalance, error) {
	tokens, err := f.moralis.WalletTokens(ctx, address, chain)
	if err != nil {
		return clients.ChainBalance{}, fmt.Errorf("erc20 fetch failed: %w", err)
	}

	// Native balance only covers the chain the RPC URL points at; a
	// failure degrades to token balances only.
	if chain == models.ChainEthereum && f.alchemy != nil {
		wei, nerr := f.alchemy.NativeBalance(ctx, address)
		if nerr != nil {
			logger.GetLogger().WithError(nerr).Warn("native balance fetch failed")
		} else {
			native := nativeSymbol[chain]
			tokens = append(tokens, clients.EVMToken{
				TokenAddress: "native",
				Symbol:       native.symbol,
				Name:         native.name,
				Decimals:     18,
				Balance:      wei.String(),
				NativeToken:  true,
			})
		}
	}

	return clients.ChainBalance{Kind: clients.KindEVM, Chain: chain, EVM: tokens}, nil
}

func (f *chainFetcher) fetchSolana(ctx context.Context, address string) (clients.ChainBalance, error) {
	lamports, err := f.solana.GetBalance(ctx, address)
	if err != nil {
		return clients.ChainBalance{}, fmt.Errorf("sol balance fetch failed: %w", err)
	}

	accounts, err := f.solana.GetTokenAccounts(ctx, address)
	if err != nil {
		return clients.ChainBalance{}, fmt.Errorf("spl token fetch failed: %w", err)
	}

	accounts = append(accounts, clients.SolanaTokenAccount{
		Mint:     "native",
		Symbol:   "SOL",
		Name:     "Solana",
		Amount:   fmt.Sprintf("%d", lamports),
		Decimals: solanaDecimals,
	})

	return clients.ChainBalance{Kind: clients.KindSolana, Chain: models.ChainSolana, Solana: accounts}, nil
}

func (f *chainFetcher) fetchBitcoin(ctx context.Context, address string) (clients.ChainBalance, error) {
	balance, err := f.bitcoin.AddressBalance(ctx, address)
	if err != nil {
		return clients.ChainBalance{}, fmt.Errorf("btc balance fetch failed: %w", err)
	}
	return clients.ChainBalance{Kind: clients.KindBitcoin, Chain: models.ChainBitcoin, Bitcoin: balance}, nil
}

func (f *chainFetcher) fetchCosmos(ctx context.Context, address string) (clients.ChainBalance, error) {
	balances, err := f.cosmos.Balances(ctx, address)
	if err != nil {
		return clients.ChainBalance{}, fmt.Errorf("cosmos balance fetch failed: %w", err)
	}
	return clients.ChainBalance{Kind: clients.KindCosmos, Chain: models.ChainCosmos, Cosmos: balances}, nil
}
