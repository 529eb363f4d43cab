package service

import (
	"context"
	"strings"

	"gazette/internal/models"
	"gazette/internal/repository"
	"gazette/internal/slug"
)

// CategoryService handles category taxonomy management.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService returns a new CategoryService.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategoryInput carries the fields accepted at category creation.
// An empty Slug is derived from the name.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// UpdateCategoryInput carries the mutable category fields. Nil pointers
// leave the field untouched.
type UpdateCategoryInput struct {
	ID          uint
	Name        *string
	Slug        *string
	Description *string
}

// CreateCategory validates the name and derives the slug from it unless
// one is supplied explicitly.
func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	categorySlug := slug.Make(in.Slug)
	if categorySlug == "" {
		categorySlug = slug.Make(name)
	}

	category := &models.Category{
		Name:        name,
		Slug:        categorySlug,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, search string, p models.Pagination) (models.PageResult[models.Category], error) {
	return s.categories.List(ctx, strings.TrimSpace(search), p.Normalize(100))
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	return s.categories.GetBySlug(ctx, categorySlug)
}

// UpdateCategory applies changes; renaming regenerates the slug.
func (s *CategoryService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Category name cannot be empty")
		}
		if name != category.Name {
			category.Name = name
			category.Slug = slug.Make(name)
		}
	}
	if in.Slug != nil {
		explicit := slug.Make(*in.Slug)
		if explicit == "" {
			return nil, models.NewValidationError("Category slug cannot be empty")
		}
		category.Slug = explicit
	}
	if in.Description != nil {
		category.Description = strings.TrimSpace(*in.Description)
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to remove a category that still has posts. The
// check is advisory; the RESTRICT foreign key enforces it authoritatively.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	count, err := s.categories.CountPosts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("category", "posts", "Cannot delete category with associated posts")
	}
	return s.categories.Delete(ctx, id)
}
