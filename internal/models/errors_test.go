package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", NewValidationError("Title is required"), fiber.StatusBadRequest},
		{"conflict", NewConflictError("user", "email", "Email already in use"), fiber.StatusBadRequest},
		{"unauthenticated", NewUnauthenticatedError("Authentication required"), fiber.StatusUnauthorized},
		{"forbidden", NewForbiddenError("Insufficient permissions"), fiber.StatusForbidden},
		{"not found", NewNotFoundError("post", 42), fiber.StatusNotFound},
		{"too large", NewTooLargeError("File exceeds 5MB limit"), fiber.StatusRequestEntityTooLarge},
		{"internal", NewInternalError(errors.New("db down")), fiber.StatusInternalServerError},
		{"plain error", errors.New("something"), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("listing posts: %w", NewNotFoundError("post", 7)), fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusForError(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := NewInternalError(cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFoundError("category", 3)
	assert.Equal(t, "category 3 not found", err.Message)
	assert.Equal(t, "category", err.Entity)
}
