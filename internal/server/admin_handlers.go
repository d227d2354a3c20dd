package server

import (
	"nexum/internal/models"
	"nexum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyRole handles GET /api/admin/role
func (s *Server) GetMyRole(c *fiber.Ctx) error {
	role, err := s.moderationService.GetMyRole(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"role": role})
}

// GrantRole handles POST /api/admin/roles
func (s *Server) GrantRole(c *fiber.Ctx) error {
	var req struct {
		TargetUserID string      `json:"targetUserId"`
		Role         models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.TargetUserID == "" {
		return models.RespondWithError(c, models.NewValidationError("targetUserId is required"))
	}

	if err := s.moderationService.GrantRole(c.Context(), currentUserID(c), req.TargetUserID, req.Role); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// BanUser handles POST /api/admin/bans
func (s *Server) BanUser(c *fiber.Ctx) error {
	var req struct {
		UserID   string `json:"userId"`
		Reason   string `json:"reason"`
		Duration *int64 `json:"duration,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.UserID == "" || req.Reason == "" {
		return models.RespondWithError(c, models.NewValidationError("userId and reason are required"))
	}

	err := s.moderationService.BanUser(c.Context(), currentUserID(c), service.BanUserInput{
		UserID:   req.UserID,
		Reason:   req.Reason,
		Duration: req.Duration,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// UnbanUser handles DELETE /api/admin/bans/:userId
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	targetID := c.Params("userId")

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	// Body is optional for unban.
	_ = c.BodyParser(&req)

	if err := s.moderationService.UnbanUser(c.Context(), currentUserID(c), targetID, req.Reason); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// CheckBanStatus handles GET /api/users/:userId/ban-status
func (s *Server) CheckBanStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	status, err := s.moderationService.CheckBanStatus(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(status)
}

// CleanupExpiredBans handles POST /api/admin/bans/cleanup
func (s *Server) CleanupExpiredBans(c *fiber.Ctx) error {
	moderator, err := s.roleService.IsModerator(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if !moderator {
		return models.RespondWithError(c, models.NewAuthorizationError("Only moderators and admins can clean up bans"))
	}

	cleaned, err := s.moderationService.CleanupExpiredBans(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"cleaned": cleaned})
}

// AdminDeletePost handles DELETE /api/admin/posts/:id
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Reason == "" {
		return models.RespondWithError(c, models.NewValidationError("Reason is required"))
	}

	if err := s.moderationService.DeletePost(c.Context(), currentUserID(c), id, req.Reason); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Reason == "" {
		return models.RespondWithError(c, models.NewValidationError("Reason is required"))
	}

	if err := s.moderationService.DeleteComment(c.Context(), currentUserID(c), id, req.Reason); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// CreateReport handles POST /api/reports
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		TargetType  models.ReportTargetType `json:"targetType"`
		TargetID    string                  `json:"targetId"`
		Reason      string                  `json:"reason"`
		Description string                  `json:"description,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	report, err := s.moderationService.CreateReport(c.Context(), service.CreateReportInput{
		ReporterID:  currentUserID(c),
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/reports?status=...
func (s *Server) GetReports(c *fiber.Ctx) error {
	var status *models.ReportStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.ReportStatus(raw)
		status = &parsed
	}

	reports, err := s.moderationService.GetReports(c.Context(), currentUserID(c), status)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(reports)
}

// ReviewReport handles POST /api/reports/:id/review
func (s *Server) ReviewReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status     models.ReportStatus `json:"status"`
		Resolution string              `json:"resolution,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	err = s.moderationService.ReviewReport(c.Context(), currentUserID(c), service.ReviewReportInput{
		ReportID:   id,
		Status:     req.Status,
		Resolution: req.Resolution,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetAuditLogs handles GET /api/admin/audit-logs?limit=...
func (s *Server) GetAuditLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	logs, err := s.moderationService.GetAuditLogs(c.Context(), currentUserID(c), limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(logs)
}

// GetStats handles GET /api/admin/stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.moderationService.GetStats(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(stats)
}
