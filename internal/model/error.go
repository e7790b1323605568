package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeInvalidSearch        = "INVALID_SEARCH"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeInvalidDate          = "INVALID_DATE"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeInvalidID            = "INVALID_ID"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeTotalMismatch        = "ORDER_TOTAL_MISMATCH"
	ErrCodeProductNotForSale    = "PRODUCT_NOT_FOR_SALE"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeOrderProductNotFound = "ORDER_PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeCustomerNotFound     = "CUSTOMER_NOT_FOUND"
	ErrCodeFileTooSmall         = "FILE_TOO_SMALL"
	ErrCodeUnsupportedFile      = "UNSUPPORTED_FILE"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeTooManyRequests      = "TOO_MANY_REQUESTS"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation with a stable code. The message is
// safe to return to the client verbatim.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidSearch    = NewDomainError(ErrCodeInvalidSearch, "Invalid search parameter")
	ErrInvalidStatus    = NewDomainError(ErrCodeInvalidStatus, "Invalid status parameter")
	ErrInvalidDate      = NewDomainError(ErrCodeInvalidDate, "Invalid date parameter")
	ErrInvalidAmount    = NewDomainError(ErrCodeInvalidAmount, "Invalid amount parameter")
	ErrTotalMismatch    = NewDomainError(ErrCodeTotalMismatch, "Order total does not match the sum of product prices")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrCustomerNotFound = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrFileTooSmall     = NewDomainError(ErrCodeFileTooSmall, "Uploaded file is too small")
	ErrUnsupportedFile  = NewDomainError(ErrCodeUnsupportedFile, "Unsupported file type")
)

// ErrProductMissing reports a specific product referenced by an order that
// does not exist. The order submission is the fault, not a missing resource,
// so the code maps to a bad request.
func ErrProductMissing(id fmt.Stringer) *DomainError {
	return NewDomainError(ErrCodeOrderProductNotFound, fmt.Sprintf("Product %s not found", id))
}

// ErrProductNotForSale reports a specific product referenced by an order that
// has no price.
func ErrProductNotForSale(id fmt.Stringer) *DomainError {
	return NewDomainError(ErrCodeProductNotForSale, fmt.Sprintf("Product %s is not for sale", id))
}

// BadRequestCodes lists the domain error codes that map to a client fault.
var BadRequestCodes = map[string]bool{
	ErrCodeInvalidJSON:          true,
	ErrCodeInvalidSearch:        true,
	ErrCodeInvalidStatus:        true,
	ErrCodeInvalidDate:          true,
	ErrCodeInvalidAmount:        true,
	ErrCodeInvalidID:            true,
	ErrCodeMissingField:         true,
	ErrCodeTotalMismatch:        true,
	ErrCodeProductNotForSale:    true,
	ErrCodeOrderProductNotFound: true,
	ErrCodeFileTooSmall:         true,
	ErrCodeUnsupportedFile:      true,
}

// NotFoundCodes lists the domain error codes that map to a missing resource.
var NotFoundCodes = map[string]bool{
	ErrCodeOrderNotFound:    true,
	ErrCodeCustomerNotFound: true,
	ErrCodeProductNotFound:  true,
}
