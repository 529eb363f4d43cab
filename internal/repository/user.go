package repository

import (
	"context"
	"errors"
	"strings"

	"gazette/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.User], error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user with the email exists so
// callers can distinguish absence from failure.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("user", "email", "Email already in use")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("user", "email", "Email already in use")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the user. Comments cascade at the database level and
// authored posts keep publishing with a null author.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("user", id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.User], error) {
	var (
		users []models.User
		total int64
	)

	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.User{})
		if search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
		}
		return query
	}

	if err := filtered().Count(&total).Error; err != nil {
		return models.PageResult[models.User]{}, models.NewInternalError(err)
	}

	if err := filtered().
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return models.PageResult[models.User]{}, models.NewInternalError(err)
	}

	return models.NewPageResult(users, total, p), nil
}
