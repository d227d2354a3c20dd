package server

import (
	"nexum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetOrCreateConversation handles POST /api/conversations
func (s *Server) GetOrCreateConversation(c *fiber.Ctx) error {
	var req struct {
		OtherUserID string `json:"otherUserId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.OtherUserID == "" {
		return models.RespondWithError(c, models.NewValidationError("otherUserId is required"))
	}

	conversation, err := s.messageService.GetOrCreateConversation(c.Context(), currentUserID(c), req.OtherUserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(conversation)
}

// GetMyConversations handles GET /api/conversations
func (s *Server) GetMyConversations(c *fiber.Ctx) error {
	summaries, err := s.messageService.GetMyConversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(summaries)
}

// GetConversationInfo handles GET /api/conversations/:id
func (s *Server) GetConversationInfo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	info, err := s.messageService.GetConversationInfo(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if info == nil {
		return models.RespondWithError(c, models.NewNotFoundError("Conversation not found"))
	}
	return c.JSON(info)
}

// GetMessages handles GET /api/conversations/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.GetMessages(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(messages)
}

// SendMessage handles POST /api/conversations/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string   `json:"content"`
		Images  []string `json:"images,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" && len(req.Images) == 0 {
		return models.RespondWithError(c, models.NewValidationError("Message content is required"))
	}

	message, err := s.messageService.SendMessage(c.Context(), currentUserID(c), id, req.Content, req.Images)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkConversationRead handles POST /api/conversations/:id/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.MarkAsRead(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteMessage handles DELETE /api/messages/:id
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.DeleteMessage(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
