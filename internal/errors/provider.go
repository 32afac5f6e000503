package errors

var (
	ErrPriceUnavailable = &DomainError{
		Code:    CodeUpstream,
		Message: "price unavailable from all providers",
	}
	ErrUnsupportedChain = &DomainError{
		Code:    CodeValidation,
		Message: "unsupported chain",
	}
)
