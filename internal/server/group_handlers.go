package server

import (
	"nexum/internal/models"
	"nexum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Avatar      string   `json:"avatar,omitempty"`
		MemberIDs   []string `json:"memberIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.Context(), currentUserID(c), service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Avatar:      req.Avatar,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetMyGroups handles GET /api/groups
func (s *Server) GetMyGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.GetMyGroups(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(groups)
}

// GetGroupInfo handles GET /api/groups/:id
func (s *Server) GetGroupInfo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	info, err := s.groupService.GetGroupInfo(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if info == nil {
		return models.RespondWithError(c, models.NewNotFoundError("Group not found"))
	}
	return c.JSON(info)
}

// AddGroupMembers handles POST /api/groups/:id/members
func (s *Server) AddGroupMembers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		MemberIDs []string `json:"memberIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if len(req.MemberIDs) == 0 {
		return models.RespondWithError(c, models.NewValidationError("memberIds is required"))
	}

	if err := s.groupService.AddMembers(c.Context(), currentUserID(c), id, req.MemberIDs); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// RemoveGroupMember handles DELETE /api/groups/:id/members/:userId
func (s *Server) RemoveGroupMember(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	memberID := c.Params("userId")

	if err := s.groupService.RemoveMember(c.Context(), currentUserID(c), id, memberID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// LeaveGroup handles POST /api/groups/:id/leave
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.groupService.LeaveGroup(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteGroup handles DELETE /api/groups/:id
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.groupService.DeleteGroup(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetGroupMessages handles GET /api/groups/:id/messages
func (s *Server) GetGroupMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	messages, err := s.groupService.GetGroupMessages(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(messages)
}

// SendGroupMessage handles POST /api/groups/:id/messages
func (s *Server) SendGroupMessage(c *fiber.Ctx) error {
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

	message, err := s.groupService.SendGroupMessage(c.Context(), currentUserID(c), id, req.Content, req.Images)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// DeleteGroupMessage handles DELETE /api/group-messages/:id
func (s *Server) DeleteGroupMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.groupService.DeleteGroupMessage(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetDefaultGroup handles GET /api/groups/default
func (s *Server) GetDefaultGroup(c *fiber.Ctx) error {
	record, err := s.groupService.GetDefaultGroup(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if record == nil {
		return models.RespondWithError(c, models.NewNotFoundError("Default group not found"))
	}
	return c.JSON(record)
}

// JoinDefaultGroup handles POST /api/groups/default/join
func (s *Server) JoinDefaultGroup(c *fiber.Ctx) error {
	if err := s.groupService.AddUserToDefaultGroup(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// InitializeDefaultGroup handles POST /api/admin/groups/default
func (s *Server) InitializeDefaultGroup(c *fiber.Ctx) error {
	userID := currentUserID(c)

	admin, err := s.roleService.IsAdmin(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if !admin {
		return models.RespondWithError(c, models.NewAuthorizationError("Only admins can initialize the default group"))
	}

	group, err := s.groupService.InitializeDefaultGroup(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}
