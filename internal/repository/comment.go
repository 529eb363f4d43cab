package repository

import (
	"context"
	"errors"

	"gazette/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, p models.Pagination) (models.PageResult[models.Comment], error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		if isForeignKeyConstraintError(err) {
			return models.NewNotFoundError("post", comment.PostID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads the comment with its commenter and the post it belongs to,
// which ownership checks need.
func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Post").
		First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, p models.Pagination) (models.PageResult[models.Comment], error) {
	var (
		comments []models.Comment
		total    int64
	)

	byPost := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID)
	}

	if err := byPost().Count(&total).Error; err != nil {
		return models.PageResult[models.Comment]{}, models.NewInternalError(err)
	}

	if err := byPost().
		Preload("User").
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&comments).Error; err != nil {
		return models.PageResult[models.Comment]{}, models.NewInternalError(err)
	}

	return models.NewPageResult(comments, total, p), nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}
