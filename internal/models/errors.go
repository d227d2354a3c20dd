package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorCode classifies application errors into a stable, machine-readable enum.
// Message text stays 1:1 with what existing clients already match on.
type ErrorCode string

const (
	// CodeAuthenticationRequired means no identity was present on the request.
	CodeAuthenticationRequired ErrorCode = "AUTHENTICATION_REQUIRED"
	// CodeAuthorizationDenied means the identity lacks role, ownership, or membership.
	CodeAuthorizationDenied ErrorCode = "AUTHORIZATION_DENIED"
	// CodeNotFound means a referenced entity is absent.
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeConflict means a uniqueness rule was violated.
	CodeConflict ErrorCode = "CONFLICT"
	// CodeValidation means the input was malformed or incomplete.
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	// CodeInternal means an unexpected failure occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAuthenticationError returns an error for requests with no identity.
func NewAuthenticationError() *AppError {
	return &AppError{Code: CodeAuthenticationRequired, Message: "Not authenticated"}
}

// NewAuthorizationError returns an error for callers lacking permission.
func NewAuthorizationError(message string) *AppError {
	return &AppError{Code: CodeAuthorizationDenied, Message: message}
}

// NewNotFoundError returns an error for an absent entity.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewConflictError returns an error for a uniqueness violation.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewValidationError returns an error for malformed input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// httpStatus maps an error code to its HTTP status.
func httpStatus(code ErrorCode) int {
	switch code {
	case CodeAuthenticationRequired:
		return fiber.StatusUnauthorized
	case CodeAuthorizationDenied:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response, deriving the HTTP
// status from the error code.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		response := ErrorResponse{
			Error: appErr.Message,
			Code:  string(appErr.Code),
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
		return c.Status(httpStatus(appErr.Code)).JSON(response)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: err.Error(),
	})
}
