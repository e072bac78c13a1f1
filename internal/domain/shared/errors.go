package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnknownAccount      = NewDomainError("UNKNOWN_ACCOUNT", "Account does not exist or is inactive")
	ErrUnknownModality     = NewDomainError("UNKNOWN_MODALITY", "Payment modality is not registered")
	ErrInvalidDate         = NewDomainError("INVALID_DATE", "Date is missing or malformed")
	ErrAccountInUse        = NewDomainError("ACCOUNT_IN_USE", "Account is referenced by existing movements")
	ErrAmountOutOfRange    = NewDomainError("AMOUNT_OUT_OF_RANGE", "Amount exceeds the supported numeric precision")
	ErrSameAccountTransfer = NewDomainError("SAME_ACCOUNT_TRANSFER", "Origin and destination accounts must differ")
)
