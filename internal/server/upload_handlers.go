package server

import (
	"io"

	"gazette/internal/models"
	"gazette/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/v1/upload/image. The image arrives as a
// multipart form file under the "imageFile" field.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(service.UploadFieldName)
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	result, err := s.uploadService.SaveImage(fileHeader.Filename, content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Image uploaded successfully",
		"imageUrl": result.URL,
		"filename": result.Filename,
	})
}
