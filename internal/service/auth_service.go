// Package service implements the application's business logic layer.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"gazette/internal/config"
	"gazette/internal/models"
	"gazette/internal/observability"
	"gazette/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// AuthService handles registration, login, and token issuance.
type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

// NewAuthService returns a new AuthService.
func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register validates input, hashes the password, and creates the user.
// A missing role defaults to the reader role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if email == "" {
		return nil, models.NewValidationError("Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, models.NewValidationError("Invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, models.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, models.NewValidationError("Invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	observability.RegistrationsTotal.WithLabelValues(role).Inc()
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same undifferentiated error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthFailuresTotal.WithLabelValues("unknown_email").Inc()
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		observability.AuthFailuresTotal.WithLabelValues("bad_password").Inc()
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// GenerateToken issues a signed JWT for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	expiry := time.Duration(s.cfg.JWTExpiryHours) * time.Hour

	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"role":  user.Role,
		"name":  user.Name,
		"iss":   "gazette-api",
		"aud":   "gazette-clients",
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
		"jti":   uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
