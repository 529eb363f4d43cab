package service

import (
	"context"
	"net/mail"
	"strings"

	"gazette/internal/models"
	"gazette/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles user administration.
type UserService struct {
	users repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UpdateUserInput carries the mutable user fields. Nil pointers leave the
// field untouched.
type UpdateUserInput struct {
	ID       uint
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

func (s *UserService) ListUsers(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.User], error) {
	return s.users.List(ctx, strings.TrimSpace(search), p.Normalize(10))
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser applies the requested changes. Role changes are the caller's
// responsibility to authorize; only admins reach that path.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		user.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, models.NewValidationError("Invalid email address")
		}
		user.Email = email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, models.NewValidationError("Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return nil, models.NewValidationError("Invalid role")
		}
		user.Role = *in.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user. Their comments cascade away and their posts
// remain with a null author.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}
