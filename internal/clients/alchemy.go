package clients

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"folio/internal/config"
)

// AlchemyClient covers the JSON-RPC calls Moralis does not: native
// coin balances for EVM wallets.
type AlchemyClient struct {
	RPCURL     string
	HTTPClient *http.Client
}

func NewAlchemyClient() *AlchemyClient {
	return &AlchemyClient{
		RPCURL:     config.GetEnv("ALCHEMY_RPC_URL", "https://eth-mainnet.g.alchemy.com/v2/demo"),
		HTTPClient: newHTTPClient(),
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NativeBalance returns the wallet's native coin balance in wei.
func (c *AlchemyClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	var resp struct {
		Result string    `json:"result"`
		Error  *rpcError `json:"error"`
	}
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_getBalance",
		Params:  []interface{}{address, "latest"},
	}
	if err := postJSON(ctx, c.HTTPClient, c.RPCURL, req, &resp); err != nil {
		return nil, fmt.Errorf("alchemy getBalance: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("alchemy getBalance: rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	return parseHexAmount(resp.Result)
}

func parseHexAmount(s string) (*big.Int, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	if trimmed == "" {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex amount %q", s)
	}
	return n, nil
}
