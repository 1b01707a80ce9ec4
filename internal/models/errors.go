package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Production gates error detail redaction. Set once at startup from config.
var Production bool

// FieldError reports a validation failure for a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the standardized API error envelope.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details string       `json:"details,omitempty"`
}

// AppError is a custom application error carrying a stable code.
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
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

// NewNotFoundError builds a 404-class error for a missing resource.
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewValidationError builds a 400-class error with a single message.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewFieldValidationError builds a 400-class error carrying per-field messages.
func NewFieldValidationError(fields []FieldError) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewUnauthorizedError builds a 401-class error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Server error",
		Err:     err,
	}
}

// RespondWithError writes the standardized error envelope. Wrapped error
// details are omitted in production.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Success: false,
			Message: appErr.Message,
			Code:    appErr.Code,
			Errors:  appErr.Fields,
		}
		if appErr.Err != nil && !Production {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{Success: false, Message: "Server error"}
		if !Production {
			response.Details = err.Error()
		}
	}

	return c.Status(status).JSON(response)
}
