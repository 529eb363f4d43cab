// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gazette/internal/config"
	"gazette/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// UserFetcher loads the authenticated principal. Satisfied by the user repository.
type UserFetcher interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// CurrentUserKey is the Fiber locals key holding the authenticated *models.User.
const CurrentUserKey = "currentUser"

// CurrentUser returns the authenticated user stored by AuthRequired or SoftAuth,
// or nil when the request is anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(CurrentUserKey).(*models.User); ok {
		return u
	}
	return nil
}

// bearerToken extracts the token from the Authorization header.
// An empty string means no credentials were presented.
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", models.NewUnauthenticatedError("Invalid authorization header format")
	}
	return parts[1], nil
}

// subjectFromToken parses and validates the token and returns the user ID
// from the "sub" claim. Rejected tokens map to a forbidden error so that
// callers with bad credentials are distinguished from callers with none;
// expired tokens get their own message so clients can prompt a re-login.
func subjectFromToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewForbiddenError("Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, models.NewForbiddenError("Token has expired")
		}
		return 0, models.NewForbiddenError("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewForbiddenError("Invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, models.NewForbiddenError("Invalid token structure - missing subject")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewForbiddenError("Invalid user ID in token")
	}
	return uint(userID), nil
}

// AuthRequired enforces authentication for protected routes. The token
// subject is re-fetched from storage on every request so role changes and
// deletions take effect immediately.
func AuthRequired(users UserFetcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if tokenString == "" {
			return models.RespondWithError(c, models.NewUnauthenticatedError("Authentication required"))
		}

		userID, err := subjectFromToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			return models.RespondWithError(c, models.NewForbiddenError("Account no longer exists"))
		}

		c.Locals("userID", user.ID)
		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}

// SoftAuth resolves the authenticated user when valid credentials are
// presented but never rejects the request. Anonymous and invalid-token
// requests both proceed without a current user.
func SoftAuth(users UserFetcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil || tokenString == "" {
			return c.Next()
		}

		userID, err := subjectFromToken(tokenString)
		if err != nil {
			return c.Next()
		}

		if user, err := users.GetByID(c.UserContext(), userID); err == nil {
			c.Locals("userID", user.ID)
			c.Locals(CurrentUserKey, user)
		}
		return c.Next()
	}
}

// RequireRole restricts a route to users whose role is in the allowed set.
// Must run after AuthRequired.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return models.RespondWithError(c, models.NewUnauthenticatedError("Authentication required"))
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return models.RespondWithError(c, models.NewForbiddenError("Insufficient permissions"))
	}
}
