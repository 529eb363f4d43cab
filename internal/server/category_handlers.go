package server

import (
	"strconv"

	"gazette/internal/models"
	"gazette/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/v1/categories.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	page, err := s.categoryService.ListCategories(
		c.Context(), c.Query("search"), parsePagination(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pageJSON("categories", page))
}

// GetCategory handles GET /api/v1/categories/:identifier. Numeric
// identifiers look up by ID, anything else by slug.
func (s *Server) GetCategory(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var category *models.Category
	var err error
	if isNumeric(identifier) {
		id, convErr := strconv.ParseUint(identifier, 10, 32)
		if convErr != nil {
			return models.RespondWithError(c,
				models.NewValidationError("Invalid category identifier"))
		}
		category, err = s.categoryService.GetCategory(c.Context(), uint(id))
	} else {
		category, err = s.categoryService.GetCategoryBySlug(c.Context(), identifier)
	}
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

// CreateCategory handles POST /api/v1/categories.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// UpdateCategory handles PUT /api/v1/categories/:id.
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Slug        *string `json:"slug"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(c.Context(), service.UpdateCategoryInput{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

// DeleteCategory handles DELETE /api/v1/categories/:id. Deletion is
// refused while posts still reference the category.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryService.DeleteCategory(c.Context(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
