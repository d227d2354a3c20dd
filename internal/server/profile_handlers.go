package server

import (
	"nexum/internal/models"
	"nexum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CheckUsernameAvailability handles GET /api/profiles/check-username?username=...
func (s *Server) CheckUsernameAvailability(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return models.RespondWithError(c, models.NewValidationError("Username is required"))
	}

	result, err := s.profileService.CheckUsernameAvailability(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(result)
}

// InitializeProfile handles POST /api/profiles
func (s *Server) InitializeProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.profileService.InitializeProfile(c.Context(), userID, req.Username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// UpdateMyProfile handles PUT /api/profiles/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Username  string  `json:"username"`
		Bio       *string `json:"bio"`
		Website   *string `json:"website"`
		Location  *string `json:"location"`
		Birthday  *int64  `json:"birthday"`
		IsPrivate *bool   `json:"isPrivate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	err := s.profileService.UpdateProfile(c.Context(), userID, service.UpdateProfileInput{
		Username:  req.Username,
		Bio:       req.Bio,
		Website:   req.Website,
		Location:  req.Location,
		Birthday:  req.Birthday,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// UpdateUsername handles PUT /api/profiles/me/username
func (s *Server) UpdateUsername(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		NewUsername string `json:"newUsername"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.profileService.UpdateUsername(c.Context(), userID, req.NewUsername)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(result)
}

// GetProfile handles GET /api/profiles/:userId
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")

	profile, err := s.profileService.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if profile == nil {
		return models.RespondWithError(c, models.NewNotFoundError("Profile not found"))
	}
	return c.JSON(profile)
}

// GetProfileByUsername handles GET /api/profiles/by-username/:username
func (s *Server) GetProfileByUsername(c *fiber.Ctx) error {
	username := c.Params("username")

	profile, err := s.profileService.GetProfileByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if profile == nil {
		return models.RespondWithError(c, models.NewNotFoundError("Profile not found"))
	}
	return c.JSON(profile)
}

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetMyProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if profile == nil {
		return models.RespondWithError(c, models.NewNotFoundError("Profile not found"))
	}
	return c.JSON(profile)
}

// SearchProfiles handles GET /api/profiles/search?q=...
func (s *Server) SearchProfiles(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return models.RespondWithError(c, models.NewValidationError("Search query is required"))
	}
	limit := c.QueryInt("limit", 20)

	profiles, err := s.profileService.SearchUsersByUsername(c.Context(), q, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profiles)
}

// SuggestUsername handles GET /api/profiles/suggest-username
func (s *Server) SuggestUsername(c *fiber.Ctx) error {
	suggestion, err := s.profileService.SuggestUsername(c.Context(), currentIdentity(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"username": suggestion})
}
