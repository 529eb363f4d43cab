package service

import (
	"context"
	"strings"

	"gazette/internal/models"
	"gazette/internal/observability"
	"gazette/internal/repository"
)

const maxCommentLen = 10000

// CommentService handles the comment thread under posts.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// CreateCommentInput carries a new comment. User is nil for guests, who
// identify themselves with GuestName/GuestEmail.
type CreateCommentInput struct {
	PostID     uint
	Content    string
	User       *models.User
	GuestName  string
	GuestEmail string
}

// CreateComment validates and stores a comment. Comments only attach to
// published posts; drafts and archived posts read as missing.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusPublished {
		return nil, models.NewNotFoundError("post", in.PostID)
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content: content,
		PostID:  in.PostID,
	}

	commenter := "guest"
	if in.User != nil {
		userID := in.User.ID
		comment.UserID = &userID
		commenter = "user"
	} else {
		comment.GuestName = strings.TrimSpace(in.GuestName)
		if comment.GuestName == "" {
			return nil, models.NewValidationError("Guest name is required")
		}
		comment.GuestEmail = normalizeEmail(in.GuestEmail)
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.CommentsCreatedTotal.WithLabelValues(commenter).Inc()
	return s.comments.GetByID(ctx, comment.ID)
}

// ListComments returns the comment page for a post.
func (s *CommentService) ListComments(ctx context.Context, postID uint, p models.Pagination) (models.PageResult[models.Comment], error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return models.PageResult[models.Comment]{}, err
	}
	return s.comments.ListByPost(ctx, postID, p.Normalize(10))
}

// canDeleteComment reports whether the actor may remove the comment:
// admins always, the commenter themselves, and author-role owners of the
// post the comment sits under.
func canDeleteComment(actor *models.User, comment *models.Comment) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	if comment.UserID != nil && *comment.UserID == actor.ID {
		return true
	}
	if actor.Role == models.RoleAuthor && comment.Post != nil &&
		comment.Post.AuthorID != nil && *comment.Post.AuthorID == actor.ID {
		return true
	}
	return false
}

// DeleteComment removes a comment under the moderation rule.
func (s *CommentService) DeleteComment(ctx context.Context, actor *models.User, id uint) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canDeleteComment(actor, comment) {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.comments.Delete(ctx, id)
}
