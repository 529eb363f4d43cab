package server

import (
	"strconv"

	"gazette/internal/middleware"
	"gazette/internal/models"
	"gazette/internal/service"

	"github.com/gofiber/fiber/v2"
)

// listPostsInput builds the service filter from query parameters.
func listPostsInput(c *fiber.Ctx) service.ListPostsInput {
	return service.ListPostsInput{
		Status:       c.Query("status"),
		CategoryID:   uint(c.QueryInt("category", 0)),
		CategorySlug: c.Query("categorySlug"),
		AuthorID:     uint(c.QueryInt("author", 0)),
		Search:       c.Query("search"),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
		Pagination:   parsePagination(c),
	}
}

// GetPosts handles GET /api/v1/posts. Anonymous and reader viewers only
// see published posts regardless of the status filter.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	viewer := middleware.CurrentUser(c)

	page, err := s.postService.ListPosts(c.Context(), viewer, listPostsInput(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pageJSON("posts", page))
}

// GetDashboardPosts handles GET /api/v1/posts/dashboard/all. Authors see
// their own posts in every status; admins see everyone's.
func (s *Server) GetDashboardPosts(c *fiber.Ctx) error {
	viewer := middleware.CurrentUser(c)

	in := listPostsInput(c)
	if in.Status == "" {
		in.Status = models.PostStatusAll
	}
	if viewer != nil && viewer.Role == models.RoleAuthor {
		in.AuthorID = viewer.ID
	}

	page, err := s.postService.ListPosts(c.Context(), viewer, in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pageJSON("posts", page))
}

// GetPost handles GET /api/v1/posts/:identifier. A numeric identifier is
// treated as an ID, anything else as a slug. Both lookups enforce
// published-only visibility for unprivileged viewers.
func (s *Server) GetPost(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	viewer := middleware.CurrentUser(c)

	var post *models.Post
	var err error
	if isNumeric(identifier) {
		id, convErr := strconv.ParseUint(identifier, 10, 32)
		if convErr != nil {
			return models.RespondWithError(c,
				models.NewValidationError("Invalid post identifier"))
		}
		post, err = s.postService.GetPost(c.Context(), viewer, uint(id))
	} else {
		post, err = s.postService.GetPostBySlug(c.Context(), viewer, identifier)
	}
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

// CreatePost handles POST /api/v1/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		Excerpt    string `json:"excerpt"`
		ImageURL   string `json:"image_url"`
		Status     string `json:"status"`
		CategoryID uint   `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), actor, service.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		ImageURL:   req.ImageURL,
		Status:     req.Status,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// UpdatePost handles PUT /api/v1/posts/:id.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actor := middleware.CurrentUser(c)

	var req struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		Excerpt    *string `json:"excerpt"`
		ImageURL   *string `json:"image_url"`
		Status     *string `json:"status"`
		CategoryID *uint   `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), actor, service.UpdatePostInput{
		ID:         id,
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		ImageURL:   req.ImageURL,
		Status:     req.Status,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

// DeletePost handles DELETE /api/v1/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), middleware.CurrentUser(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}
