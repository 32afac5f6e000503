package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already tracked")
)
