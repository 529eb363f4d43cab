package repository

import (
	"context"
	"errors"
	"strings"

	"gazette/internal/models"
	"gazette/internal/observability"

	"gorm.io/gorm"
)

// PostFilter narrows post listings. Zero values mean "no filter";
// Status models.PostStatusAll also disables the status filter.
type PostFilter struct {
	Status     string
	CategoryID uint
	AuthorID   uint
	Search     string
	SortBy     string
	SortOrder  string
}

// sortColumns whitelists the sortable post columns. Anything outside the
// map falls back to creation time.
var sortColumns = map[string]string{
	"title":       "title",
	"createdAt":   "created_at",
	"publishedAt": "published_at",
	"status":      "status",
}

// orderClause resolves the filter's sort request against the whitelist.
func (f PostFilter) orderClause() string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter PostFilter, p models.Pagination) (models.PageResult[models.Post], error)
}

type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("post", "slug", "A post with this title already exists")
		}
		if isForeignKeyConstraintError(err) {
			return models.NewValidationError("Category does not exist")
		}
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": post.ID, "status": post.Status})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// GetBySlug loads the full public detail view including the comment thread.
func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.User").
		Where("slug = ?", slug).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("post", "slug", "A post with this title already exists")
		}
		if isForeignKeyConstraintError(err) {
			return models.NewValidationError("Category does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post. Its comments cascade at the database level.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("post", id)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, p models.Pagination) (models.PageResult[models.Post], error) {
	var (
		posts []models.Post
		total int64
	)

	// Chains are not reusable after a finisher, so conditions are rebuilt
	// for the count and the fetch.
	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Post{})
		if filter.Status != "" && filter.Status != models.PostStatusAll {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.CategoryID != 0 {
			query = query.Where("category_id = ?", filter.CategoryID)
		}
		if filter.AuthorID != 0 {
			query = query.Where("author_id = ?", filter.AuthorID)
		}
		if filter.Search != "" {
			// Lowered LIKE keeps the search portable across Postgres and SQLite.
			pattern := "%" + strings.ToLower(filter.Search) + "%"
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?",
				pattern, pattern, pattern,
			)
		}
		return query
	}

	if err := filtered().Count(&total).Error; err != nil {
		return models.PageResult[models.Post]{}, models.NewInternalError(err)
	}

	if err := filtered().
		Preload("Author").
		Preload("Category").
		Order(filter.orderClause()).
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&posts).Error; err != nil {
		return models.PageResult[models.Post]{}, models.NewInternalError(err)
	}

	return models.NewPageResult(posts, total, p), nil
}
