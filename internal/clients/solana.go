package clients

import (
	"context"
	"fmt"
	"net/http"

	"folio/internal/config"
)

// SolanaRPCClient fetches SOL and SPL token balances over JSON-RPC.
type SolanaRPCClient struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewSolanaRPCClient() *SolanaRPCClient {
	return &SolanaRPCClient{
		Endpoint:   config.GetEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
		HTTPClient: newHTTPClient(),
	}
}

// splTokenProgram is the SPL token program id used to enumerate accounts.
const splTokenProgram = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// GetBalance returns the wallet's SOL balance in lamports.
func (c *SolanaRPCClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	var resp struct {
		Result struct {
			Value uint64 `json:"value"`
		} `json:"result"`
		Error *rpcError `json:"error"`
	}
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getBalance",
		Params:  []interface{}{address},
	}
	if err := postJSON(ctx, c.HTTPClient, c.Endpoint, req, &resp); err != nil {
		return 0, fmt.Errorf("solana getBalance: %w", err)
	}
	if resp.Error != nil {
		return 0, fmt.Errorf("solana getBalance: rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result.Value, nil
}

// GetTokenAccounts returns the wallet's SPL token holdings.
func (c *SolanaRPCClient) GetTokenAccounts(ctx context.Context, owner string) ([]SolanaTokenAccount, error) {
	var resp struct {
		Result struct {
			Value []struct {
				Account struct {
					Data struct {
						Parsed struct {
							Info struct {
								Mint        string `json:"mint"`
								TokenAmount struct {
									Amount   string `json:"amount"`
									Decimals int    `json:"decimals"`
								} `json:"tokenAmount"`
							} `json:"info"`
						} `json:"parsed"`
					} `json:"data"`
				} `json:"account"`
			} `json:"value"`
		} `json:"result"`
		Error *rpcError `json:"error"`
	}
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getTokenAccountsByOwner",
		Params: []interface{}{
			owner,
			map[string]string{"programId": splTokenProgram},
			map[string]string{"encoding": "jsonParsed"},
		},
	}
	if err := postJSON(ctx, c.HTTPClient, c.Endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("solana getTokenAccountsByOwner: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("solana getTokenAccountsByOwner: rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	accounts := make([]SolanaTokenAccount, 0, len(resp.Result.Value))
	for _, v := range resp.Result.Value {
		info := v.Account.Data.Parsed.Info
		accounts = append(accounts, SolanaTokenAccount{
			Mint:     info.Mint,
			Amount:   info.TokenAmount.Amount,
			Decimals: info.TokenAmount.Decimals,
		})
	}
	return accounts, nil
}
