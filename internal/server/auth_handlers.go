package server

import (
	"gazette/internal/middleware"
	"gazette/internal/models"
	"gazette/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/v1/auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	// Self-registration always produces a reader account. Privileged roles
	// are assigned by an admin through the users endpoint.
	result, err := s.authService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.authService.Login(c.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Me handles GET /api/v1/auth/me.
func (s *Server) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Authentication required"))
	}
	return c.JSON(fiber.Map{"user": user})
}
