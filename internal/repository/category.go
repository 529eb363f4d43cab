package repository

import (
	"context"
	"errors"
	"strings"

	"gazette/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.Category], error)
	CountPosts(ctx context.Context, categoryID uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("category", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("category", "name", "Category name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("category", "name", "Category name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the category. The posts foreign key is RESTRICT, so the
// database refuses deletion while posts still reference the category.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		if isForeignKeyConstraintError(result.Error) {
			return models.NewConflictError("category", "posts", "Cannot delete category with associated posts")
		}
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("category", id)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.Category], error) {
	var (
		categories []models.Category
		total      int64
	)

	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Category{})
		if search != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
		return query
	}

	if err := filtered().Count(&total).Error; err != nil {
		return models.PageResult[models.Category]{}, models.NewInternalError(err)
	}

	if err := filtered().
		Order("name ASC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&categories).Error; err != nil {
		return models.PageResult[models.Category]{}, models.NewInternalError(err)
	}

	return models.NewPageResult(categories, total, p), nil
}

func (r *categoryRepository) CountPosts(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
