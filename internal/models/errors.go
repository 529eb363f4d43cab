package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind is the closed set of application error categories. Transport
// status codes are derived from the kind through a single lookup table,
// never from message text.
type ErrorKind string

const (
	KindValidation      ErrorKind = "VALIDATION_ERROR"
	KindConflict        ErrorKind = "CONFLICT"
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindTooLarge        ErrorKind = "PAYLOAD_TOO_LARGE"
	KindInternal        ErrorKind = "INTERNAL_ERROR"
)

// statusByKind maps each error kind to its HTTP status code.
var statusByKind = map[ErrorKind]int{
	KindValidation:      fiber.StatusBadRequest,
	KindConflict:        fiber.StatusBadRequest,
	KindUnauthenticated: fiber.StatusUnauthorized,
	KindForbidden:       fiber.StatusForbidden,
	KindNotFound:        fiber.StatusNotFound,
	KindTooLarge:        fiber.StatusRequestEntityTooLarge,
	KindInternal:        fiber.StatusInternalServerError,
}

// AppError is a domain error carrying a kind plus optional structured
// detail about the entity and field involved.
type AppError struct {
	Kind    ErrorKind
	Entity  string
	Field   string
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

// NewValidationError reports a bad or missing request field.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewConflictError reports a uniqueness or foreign-key violation on the
// given entity field.
func NewConflictError(entity, field, message string) *AppError {
	return &AppError{Kind: KindConflict, Entity: entity, Field: field, Message: message}
}

// NewUnauthenticatedError reports missing or failed credentials.
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

// NewForbiddenError reports a rejected token or a denied role/ownership check.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity string, id interface{}) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}

// NewTooLargeError reports a payload exceeding a size limit.
func NewTooLargeError(message string) *AppError {
	return &AppError{Kind: KindTooLarge, Message: message}
}

// NewInternalError wraps an unexpected error. The wrapped error is logged
// but never serialized to clients.
func NewInternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// StatusForError resolves err to its HTTP status. Non-AppError values map
// to 500.
func StatusForError(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByKind[appErr.Kind]; ok {
			return status
		}
	}
	return fiber.StatusInternalServerError
}

// ErrorResponse is the standardized API error body.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

// RespondWithError writes the standardized error response for err, with
// the status derived from the error kind. Internal detail is never leaked.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)

	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorResponse{
			Message: appErr.Message,
			Code:    string(appErr.Kind),
			Field:   appErr.Field,
		})
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: "Internal server error",
		Code:    string(KindInternal),
	})
}
