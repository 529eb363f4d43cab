package server

import (
	"gazette/internal/middleware"
	"gazette/internal/models"
	"gazette/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/v1/post/:postId/comments. A logged-in
// user comments under their account; anonymous visitors must supply a
// guest name.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content    string `json:"content"`
		GuestName  string `json:"guest_name"`
		GuestEmail string `json:"guest_email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		PostID:     postID,
		Content:    req.Content,
		User:       middleware.CurrentUser(c),
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// GetComments handles GET /api/v1/post/:postId/comments.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	page, err := s.commentService.ListComments(
		c.Context(), postID, parsePagination(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pageJSON("comments", page))
}

// DeleteComment handles DELETE /api/v1/comments/:commentId. Admins delete
// any comment, users their own, and authors any comment on their posts.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), middleware.CurrentUser(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
