package api

import (
	"net/http"

	"github.com/johnwards/teasaloon/internal/domain"
)

// Error categories carried in the envelope's category field.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryObjectNotFound  = "OBJECT_NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryInternalError   = "INTERNAL_ERROR"
	CategoryUnauthorized    = "UNAUTHORIZED"
)

// Conflict sub-categories.
const (
	SubCategoryStaleVersion = "STALE_VERSION"
	SubCategoryInUse        = "IN_USE"
)

// Error is the JSON envelope for every non-2xx response.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	SubCategory   string        `json:"subCategory,omitempty"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail describes one offending field. In names the field, Code the
// rule it broke.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	In      string `json:"in,omitempty"`
}

func newError(category, message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      category,
	}
}

// NewNotFoundError creates an OBJECT_NOT_FOUND error.
func NewNotFoundError(message, correlationID string) *Error {
	return newError(CategoryObjectNotFound, message, correlationID)
}

// NewValidationError creates a VALIDATION_ERROR error with optional details.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	e := newError(CategoryValidationError, message, correlationID)
	e.Errors = details
	return e
}

// NewFieldValidationError converts a domain validation failure into a
// VALIDATION_ERROR error with one detail per field.
func NewFieldValidationError(verr *domain.ValidationError, correlationID string) *Error {
	details := make([]ErrorDetail, len(verr.Fields))
	for i, f := range verr.Fields {
		details[i] = ErrorDetail{Message: f.Message, Code: f.Rule, In: f.Field}
	}
	return NewValidationError(verr.Error(), correlationID, details)
}

// NewConflictError creates a CONFLICT error. subCategory may be empty.
func NewConflictError(message, subCategory, correlationID string) *Error {
	e := newError(CategoryConflict, message, correlationID)
	e.SubCategory = subCategory
	return e
}

// NewInternalError creates an INTERNAL_ERROR error.
func NewInternalError(message, correlationID string) *Error {
	return newError(CategoryInternalError, message, correlationID)
}

// NewUnauthorizedError creates an UNAUTHORIZED error.
func NewUnauthorizedError(message, correlationID string) *Error {
	return newError(CategoryUnauthorized, message, correlationID)
}

// WriteError writes apiErr as JSON with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
