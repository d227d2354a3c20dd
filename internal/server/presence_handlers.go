package server

import (
	"errors"

	"nexum/internal/cache"
	"nexum/internal/models"

	"github.com/gofiber/fiber/v2"
)

func parseTypingScope(c *fiber.Ctx) (cache.TypingScope, uint, error) {
	scope := cache.TypingScope(c.Params("scope"))
	if scope != cache.TypingScopeConversation && scope != cache.TypingScopeGroup {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid typing scope"))
		return "", 0, errResponseWritten
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid ID"))
		return "", 0, errResponseWritten
	}
	return scope, uint(id), nil
}

func respondPresenceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, cache.ErrUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Presence is unavailable",
		})
	}
	return models.RespondWithError(c, models.NewInternalError(err))
}

// SetPresence handles PUT /api/presence/me
func (s *Server) SetPresence(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	switch req.Status {
	case cache.StatusOnline, cache.StatusAway:
	case cache.StatusOffline:
		if err := cache.ClearPresence(c.Context(), currentUserID(c)); err != nil {
			return respondPresenceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	default:
		return models.RespondWithError(c, models.NewValidationError("Invalid presence status"))
	}

	if err := cache.SetPresence(c.Context(), currentUserID(c), req.Status); err != nil {
		return respondPresenceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetPresence handles GET /api/presence/:userId
func (s *Server) GetPresence(c *fiber.Ctx) error {
	userID := c.Params("userId")

	status, err := cache.GetPresence(c.Context(), userID)
	if err != nil {
		return respondPresenceError(c, err)
	}
	return c.JSON(fiber.Map{"userId": userID, "status": status})
}

// SetTyping handles PUT /api/presence/typing/:scope/:id
func (s *Server) SetTyping(c *fiber.Ctx) error {
	scope, id, err := parseTypingScope(c)
	if err != nil {
		return nil
	}

	if err := cache.SetTyping(c.Context(), scope, id, currentUserID(c)); err != nil {
		return respondPresenceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ClearTyping handles DELETE /api/presence/typing/:scope/:id
func (s *Server) ClearTyping(c *fiber.Ctx) error {
	scope, id, err := parseTypingScope(c)
	if err != nil {
		return nil
	}

	if err := cache.ClearTyping(c.Context(), scope, id, currentUserID(c)); err != nil {
		return respondPresenceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListTyping handles GET /api/presence/typing/:scope/:id
func (s *Server) ListTyping(c *fiber.Ctx) error {
	scope, id, err := parseTypingScope(c)
	if err != nil {
		return nil
	}

	userIDs, err := cache.ListTyping(c.Context(), scope, id)
	if err != nil {
		return respondPresenceError(c, err)
	}
	return c.JSON(fiber.Map{"typing": userIDs})
}
