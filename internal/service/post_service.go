package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gazette/internal/models"
	"gazette/internal/observability"
	"gazette/internal/repository"
	"gazette/internal/slug"
)

// PostService handles post authoring and publishing.
type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
}

// NewPostService returns a new PostService.
func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository) *PostService {
	return &PostService{posts: posts, categories: categories}
}

// CreatePostInput carries the fields accepted at post creation.
type CreatePostInput struct {
	Title      string
	Content    string
	Excerpt    string
	ImageURL   string
	Status     string
	CategoryID uint
}

// UpdatePostInput carries the mutable post fields. Nil pointers leave the
// field untouched.
type UpdatePostInput struct {
	ID         uint
	Title      *string
	Content    *string
	Excerpt    *string
	ImageURL   *string
	Status     *string
	CategoryID *uint
}

// ListPostsInput narrows a post listing. CategorySlug takes precedence
// over CategoryID when both are set.
type ListPostsInput struct {
	Status       string
	CategoryID   uint
	CategorySlug string
	AuthorID     uint
	Search       string
	SortBy       string
	SortOrder    string
	Pagination   models.Pagination
}

// canManagePost reports whether the actor may modify the post: admins may
// always, authors only their own posts.
func canManagePost(actor *models.User, post *models.Post) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	if actor.Role == models.RoleAuthor && post.AuthorID != nil && *post.AuthorID == actor.ID {
		return true
	}
	return false
}

// CreatePost validates input and derives the slug and publication time.
func (s *PostService) CreatePost(ctx context.Context, actor *models.User, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if in.CategoryID == 0 {
		return nil, models.NewValidationError("Category is required")
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(status) {
		return nil, models.NewValidationError("Invalid post status")
	}

	authorID := actor.ID
	post := &models.Post{
		Title:      title,
		Slug:       slug.Make(title),
		Excerpt:    strings.TrimSpace(in.Excerpt),
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		Status:     status,
		AuthorID:   &authorID,
		CategoryID: in.CategoryID,
	}
	if status == models.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreatedTotal.WithLabelValues(status).Inc()
	return s.posts.GetByID(ctx, post.ID)
}

// ListPosts returns a filtered page. Unprivileged viewers only ever see
// published posts regardless of the requested status filter.
func (s *PostService) ListPosts(ctx context.Context, viewer *models.User, in ListPostsInput) (models.PageResult[models.Post], error) {
	status := in.Status
	if status == "" {
		status = models.PostStatusPublished
	}
	if status != models.PostStatusAll && !models.ValidPostStatus(status) {
		return models.PageResult[models.Post]{}, models.NewValidationError("Invalid post status")
	}

	privileged := viewer != nil && (viewer.Role == models.RoleAdmin || viewer.Role == models.RoleAuthor)
	if !privileged {
		status = models.PostStatusPublished
	}

	categoryID := in.CategoryID
	if in.CategorySlug != "" {
		category, err := s.categories.GetBySlug(ctx, in.CategorySlug)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Kind == models.KindNotFound {
				// An unknown category filter matches nothing rather than
				// failing the listing.
				return models.NewPageResult[models.Post](nil, 0, in.Pagination.Normalize(10)), nil
			}
			return models.PageResult[models.Post]{}, err
		}
		categoryID = category.ID
	}

	filter := repository.PostFilter{
		Status:     status,
		CategoryID: categoryID,
		AuthorID:   in.AuthorID,
		Search:     in.Search,
		SortBy:     in.SortBy,
		SortOrder:  in.SortOrder,
	}
	return s.posts.List(ctx, filter, in.Pagination.Normalize(10))
}

// GetPost loads a post by ID. Unpublished posts are hidden from viewers
// who cannot manage them.
func (s *PostService) GetPost(ctx context.Context, viewer *models.User, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusPublished && !canManagePost(viewer, post) {
		return nil, models.NewNotFoundError("post", id)
	}
	return post, nil
}

// GetPostBySlug loads a post by slug under the same visibility rule as
// GetPost.
func (s *PostService) GetPostBySlug(ctx context.Context, viewer *models.User, postSlug string) (*models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusPublished && !canManagePost(viewer, post) {
		return nil, models.NewNotFoundError("post", postSlug)
	}
	return post, nil
}

// UpdatePost applies changes under the ownership rule. A retitled post gets
// a fresh slug; a first transition to published stamps the publish time.
func (s *PostService) UpdatePost(ctx context.Context, actor *models.User, in UpdatePostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !canManagePost(actor, post) {
		return nil, models.NewForbiddenError("You can only modify your own posts")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if title != post.Title {
			post.Title = title
			post.Slug = slug.Make(title)
		}
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}
	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			return nil, models.NewValidationError("Category is required")
		}
		post.CategoryID = *in.CategoryID
	}
	if in.Status != nil {
		if !models.ValidPostStatus(*in.Status) {
			return nil, models.NewValidationError("Invalid post status")
		}
		if *in.Status == models.PostStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = *in.Status
	}

	// Associations are managed through their own IDs; clear the loaded
	// structs so Save does not write stale copies back.
	post.Author = nil
	post.Category = nil

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// DeletePost removes the post under the ownership rule. Comments cascade
// away with it.
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, id uint) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManagePost(actor, post) {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.posts.Delete(ctx, id)
}
