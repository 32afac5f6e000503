package portfolio

import "errors"

// Service errors
var (
	ErrBalanceFetchFailed = errors.New("failed to fetch wallet balances")
	ErrNoTrackedWallets   = errors.New("no tracked wallets registered")
)
