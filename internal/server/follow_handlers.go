package server

import (
	"nexum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:userId/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID := c.Params("userId")

	if err := s.followService.Follow(c.Context(), currentUserID(c), targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// UnfollowUser handles DELETE /api/users/:userId/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID := c.Params("userId")

	if err := s.followService.Unfollow(c.Context(), currentUserID(c), targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetFollowStatus handles GET /api/users/:userId/follow-status
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	targetID := c.Params("userId")

	following, err := s.followService.IsFollowing(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"isFollowing": following})
}

// GetFollowStats handles GET /api/users/:userId/follow-stats
func (s *Server) GetFollowStats(c *fiber.Ctx) error {
	userID := c.Params("userId")

	stats, err := s.followService.GetFollowStats(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(stats)
}

// GetFollowers handles GET /api/users/:userId/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := c.Params("userId")

	followers, err := s.followService.GetFollowers(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(followers)
}
