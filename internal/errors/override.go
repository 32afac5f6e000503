package errors

var (
	ErrOverrideNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "override not found",
	}
	ErrOverrideConflict = &DomainError{
		Code:    CodeValidation,
		Message: "an active override already exists for this token",
	}
	ErrInvalidOverrideType = &DomainError{
		Code:    CodeValidation,
		Message: "overrideType must be one of: address, symbol",
	}
	ErrInvalidOverrideAction = &DomainError{
		Code:    CodeValidation,
		Message: "action must be one of: upsert, delete, bulk_delete",
	}
)
