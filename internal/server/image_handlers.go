package server

import (
	"strings"

	"nexum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxImageUploadBytes caps a single upload at 10 MB, matching the image
// host's own limit.
const maxImageUploadBytes = 10 << 20

// UploadImage handles POST /api/images. The file is forwarded to the
// external image host; the returned URL and public id are what clients
// attach to posts.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Image file is required"))
	}
	if fileHeader.Size > maxImageUploadBytes {
		return models.RespondWithError(c, models.NewValidationError("Image exceeds the 10MB size limit"))
	}
	if contentType := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		return models.RespondWithError(c, models.NewValidationError("Only image uploads are accepted"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer file.Close()

	result, err := s.imageClient.Upload(c.Context(), fileHeader.Filename, file)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
