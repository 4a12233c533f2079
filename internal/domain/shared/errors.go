package shared

// DomainError carries a stable machine code alongside the human message.
// The HTTP layer maps codes onto status codes.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string { return e.Message }

// NewDomainError builds a DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Errors shared across the reporting domain.
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidPeriod = NewDomainError("INVALID_PERIOD", "Report period end date precedes start date")
	ErrPeriodTooLong = NewDomainError("INVALID_PERIOD", "Report period exceeds the maximum supported window")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
