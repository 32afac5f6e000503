// Package clients holds thin HTTP clients for the external balance and
// price providers, plus the provider-specific response shapes the
// normalizer consumes.
package clients

// ChainKind discriminates the payload carried by a ChainBalance.
type ChainKind int

const (
	KindEVM ChainKind = iota
	KindSolana
	KindBitcoin
	KindCosmos
)

// EVMToken is one ERC-20 (or native) holding as Moralis/Alchemy report it.
// Balance is the raw integer amount before decimal scaling.
type EVMToken struct {
	TokenAddress string `json:"token_address"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Logo         string `json:"logo,omitempty"`
	Decimals     int    `json:"decimals"`
	Balance      string `json:"balance"`
	NativeToken  bool   `json:"native_token,omitempty"`
}

// SolanaTokenAccount is one SPL token account holding.
type SolanaTokenAccount struct {
	Mint     string `json:"mint"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`
}

// BitcoinBalance is the single-balance response for a BTC address.
type BitcoinBalance struct {
	Address  string `json:"address"`
	Satoshis int64  `json:"satoshis"`
}

// CosmosBalance is one bank-module coin balance.
type CosmosBalance struct {
	Denom    string `json:"denom"`
	Symbol   string `json:"symbol"`
	Amount   string `json:"amount"`
	Exponent int    `json:"exponent"`
}

// ChainBalance is the tagged variant handed to the normalizer: exactly
// one payload field matching Kind is populated.
type ChainBalance struct {
	Kind    ChainKind
	Chain   string
	EVM     []EVMToken
	Solana  []SolanaTokenAccount
	Bitcoin *BitcoinBalance
	Cosmos  []CosmosBalance
}
