package server

import (
	"gazette/internal/middleware"
	"gazette/internal/models"
	"gazette/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/v1/users. Admin only.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page, err := s.userService.ListUsers(
		c.Context(), c.Query("search"), parsePagination(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pageJSON("users", page))
}

// CreateUser handles POST /api/v1/users. Admin only; unlike public
// registration, the role can be set directly.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.authService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": result.User})
}

// GetUser handles GET /api/v1/users/:id. Users may view themselves;
// anyone else requires the admin role.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actor := middleware.CurrentUser(c)
	if actor == nil || (actor.ID != id && actor.Role != models.RoleAdmin) {
		return models.RespondWithError(c,
			models.NewForbiddenError("You cannot view this user"))
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateUser handles PUT /api/v1/users/:id. Users may update their own
// profile but only admins may change roles or other accounts.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actor := middleware.CurrentUser(c)
	if actor == nil || (actor.ID != id && actor.Role != models.RoleAdmin) {
		return models.RespondWithError(c,
			models.NewForbiddenError("You cannot update this user"))
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if req.Role != nil && actor.Role != models.RoleAdmin {
		return models.RespondWithError(c,
			models.NewForbiddenError("Only admins can change roles"))
	}

	user, err := s.userService.UpdateUser(c.Context(), service.UpdateUserInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// DeleteUser handles DELETE /api/v1/users/:id. Admin only.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
