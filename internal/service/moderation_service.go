package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"nexum/internal/models"

	"gorm.io/gorm"
)

// ModerationService handles roles, bans, reports, and the audit log.
// It works directly against the database so every privileged mutation
// and its audit entry commit in one transaction.
type ModerationService struct {
	db *gorm.DB
}

type BanUserInput struct {
	UserID   string
	Reason   string
	Duration *int64 // milliseconds, nil = permanent
}

type CreateReportInput struct {
	ReporterID  string
	TargetType  models.ReportTargetType
	TargetID    string
	Reason      string
	Description string
}

type ReviewReportInput struct {
	ReportID   uint
	Status     models.ReportStatus
	Resolution string
}

// ModerationStats backs the admin dashboard counters.
type ModerationStats struct {
	Users          int64 `json:"users"`
	Posts          int64 `json:"posts"`
	PendingReports int64 `json:"pendingReports"`
	ActiveBans     int64 `json:"activeBans"`
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// resolveRole re-reads the caller's role on every call so demotions
// take effect immediately.
func (s *ModerationService) resolveRole(ctx context.Context, db *gorm.DB, userID string) (models.Role, error) {
	var row models.UserRole
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.RoleUser, nil
		}
		return models.RoleUser, models.NewInternalError(err)
	}
	return row.Role, nil
}

func (s *ModerationService) GetMyRole(ctx context.Context, userID string) (models.Role, error) {
	return s.resolveRole(ctx, s.db, userID)
}

func (s *ModerationService) requireAdmin(ctx context.Context, db *gorm.DB, userID, denyMsg string) error {
	role, err := s.resolveRole(ctx, db, userID)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin {
		return models.NewAuthorizationError(denyMsg)
	}
	return nil
}

func (s *ModerationService) requireModerator(ctx context.Context, db *gorm.DB, userID, denyMsg string) error {
	role, err := s.resolveRole(ctx, db, userID)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && role != models.RoleModerator {
		return models.NewAuthorizationError(denyMsg)
	}
	return nil
}

func appendAudit(ctx context.Context, tx *gorm.DB, adminID string, action models.AuditAction, targetType, targetID string, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return models.NewInternalError(err)
	}
	entry := models.AuditLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    string(payload),
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GrantRole upserts the target's role. Admin only.
func (s *ModerationService) GrantRole(ctx context.Context, callerID, targetUserID string, role models.Role) error {
	if role != models.RoleAdmin && role != models.RoleModerator && role != models.RoleUser {
		return models.NewValidationError("Invalid role")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireAdmin(ctx, tx, callerID, "Only admins can grant roles"); err != nil {
			return err
		}

		var existing models.UserRole
		err := tx.Where("user_id = ?", targetUserID).First(&existing).Error
		switch {
		case err == nil:
			existing.Role = role
			existing.GrantedBy = callerID
			if err := tx.Save(&existing).Error; err != nil {
				return models.NewInternalError(err)
			}
		case err == gorm.ErrRecordNotFound:
			row := models.UserRole{UserID: targetUserID, Role: role, GrantedBy: callerID}
			if err := tx.Create(&row).Error; err != nil {
				return models.NewInternalError(err)
			}
		default:
			return models.NewInternalError(err)
		}

		return appendAudit(ctx, tx, callerID, models.AuditGrantRole, "user", targetUserID,
			map[string]any{"role": role})
	})
}

// BanUser records a ban. Moderator or admin; self and admin targets are
// protected.
func (s *ModerationService) BanUser(ctx context.Context, callerID string, in BanUserInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireModerator(ctx, tx, callerID, "Only moderators and admins can ban users"); err != nil {
			return err
		}
		if in.UserID == callerID {
			return models.NewValidationError("You cannot ban yourself")
		}

		targetRole, err := s.resolveRole(ctx, tx, in.UserID)
		if err != nil {
			return err
		}
		if targetRole == models.RoleAdmin {
			return models.NewAuthorizationError("Cannot ban an admin")
		}

		ban := models.UserBan{
			UserID:   in.UserID,
			Reason:   in.Reason,
			BannedBy: callerID,
			IsActive: true,
		}
		if in.Duration != nil {
			expiresAt := time.Now().UnixMilli() + *in.Duration
			ban.ExpiresAt = &expiresAt
		}
		if err := tx.Create(&ban).Error; err != nil {
			return models.NewInternalError(err)
		}

		return appendAudit(ctx, tx, callerID, models.AuditBanUser, "user", in.UserID,
			map[string]any{"reason": in.Reason, "duration": in.Duration})
	})
}

// UnbanUser deactivates the target's active bans.
func (s *ModerationService) UnbanUser(ctx context.Context, callerID, targetUserID, reason string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireModerator(ctx, tx, callerID, "Only moderators and admins can unban users"); err != nil {
			return err
		}

		if err := tx.Model(&models.UserBan{}).
			Where("user_id = ? AND is_active = ?", targetUserID, true).
			Update("is_active", false).Error; err != nil {
			return models.NewInternalError(err)
		}

		return appendAudit(ctx, tx, callerID, models.AuditUnbanUser, "user", targetUserID,
			map[string]any{"reason": reason})
	})
}

// DeletePost soft-deletes any post with an audit entry. Moderator or
// admin.
func (s *ModerationService) DeletePost(ctx context.Context, callerID string, postID uint, reason string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireModerator(ctx, tx, callerID, "Only moderators and admins can delete posts"); err != nil {
			return err
		}

		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return models.NewNotFoundError("Post not found")
			}
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			Updates(map[string]any{"is_deleted": true, "updated_at": time.Now().UnixMilli()}).Error; err != nil {
			return models.NewInternalError(err)
		}

		return appendAudit(ctx, tx, callerID, models.AuditDeletePost, "post", itoa(postID),
			map[string]any{"reason": reason, "originalAuthor": post.UserID})
	})
}

// DeleteComment soft-deletes any comment with an audit entry. Moderator
// or admin.
func (s *ModerationService) DeleteComment(ctx context.Context, callerID string, commentID uint, reason string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireModerator(ctx, tx, callerID, "Only moderators and admins can delete comments"); err != nil {
			return err
		}

		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return models.NewNotFoundError("Comment not found")
			}
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
			Updates(map[string]any{"is_deleted": true, "updated_at": time.Now().UnixMilli()}).Error; err != nil {
			return models.NewInternalError(err)
		}

		return appendAudit(ctx, tx, callerID, models.AuditDeleteComment, "comment", itoa(commentID),
			map[string]any{"reason": reason, "originalAuthor": comment.UserID})
	})
}

func (s *ModerationService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	switch in.TargetType {
	case models.ReportTargetPost, models.ReportTargetComment, models.ReportTargetMessage, models.ReportTargetUser:
	default:
		return nil, models.NewValidationError("Invalid report target type")
	}
	if in.Reason == "" {
		return nil, models.NewValidationError("Report reason is required")
	}

	report := models.Report{
		ReporterID:  in.ReporterID,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		Reason:      in.Reason,
		Description: in.Description,
		Status:      models.ReportStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &report, nil
}

// GetReports lists reports newest first, optionally filtered by status,
// capped at 100 rows. Moderator or admin.
func (s *ModerationService) GetReports(ctx context.Context, callerID string, status *models.ReportStatus) ([]models.Report, error) {
	if err := s.requireModerator(ctx, s.db, callerID, "Only moderators and admins can view reports"); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Model(&models.Report{}).Order("created_at DESC").Limit(100)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

// ReviewReport moves a pending report to a terminal status. Resolved
// reports get an audit entry.
func (s *ModerationService) ReviewReport(ctx context.Context, callerID string, in ReviewReportInput) error {
	switch in.Status {
	case models.ReportStatusReviewed, models.ReportStatusResolved, models.ReportStatusDismissed:
	default:
		return models.NewValidationError("Invalid report status")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireModerator(ctx, tx, callerID, "Only moderators and admins can review reports"); err != nil {
			return err
		}

		var report models.Report
		if err := tx.First(&report, in.ReportID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return models.NewNotFoundError("Report not found")
			}
			return models.NewInternalError(err)
		}
		if report.Status != models.ReportStatusPending {
			return models.NewConflictError("Report has already been reviewed")
		}

		now := time.Now().UnixMilli()
		report.Status = in.Status
		report.ReviewedBy = callerID
		report.ReviewedAt = &now
		report.Resolution = in.Resolution
		if err := tx.Save(&report).Error; err != nil {
			return models.NewInternalError(err)
		}

		if in.Status == models.ReportStatusResolved {
			return appendAudit(ctx, tx, callerID, models.AuditResolveReport, string(report.TargetType), report.TargetID,
				map[string]any{"reportId": report.ID, "resolution": in.Resolution})
		}
		return nil
	})
}

// GetAuditLogs lists audit entries newest first. Admin only.
func (s *ModerationService) GetAuditLogs(ctx context.Context, callerID string, limit int) ([]models.AuditLog, error) {
	if err := s.requireAdmin(ctx, s.db, callerID, "Only admins can view audit logs"); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var logs []models.AuditLog
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

// CheckBanStatus reports whether the user is currently banned. An
// expired ban reads as not banned without mutating the record; the
// sweep deactivates it later.
func (s *ModerationService) CheckBanStatus(ctx context.Context, userID string) (*models.BanStatus, error) {
	var ban models.UserBan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("banned_at DESC").
		First(&ban).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.BanStatus{IsBanned: false}, nil
		}
		return nil, models.NewInternalError(err)
	}

	if ban.ExpiresAt != nil && *ban.ExpiresAt < time.Now().UnixMilli() {
		return &models.BanStatus{IsBanned: false, Expired: true}, nil
	}

	return &models.BanStatus{
		IsBanned:  true,
		Reason:    ban.Reason,
		BannedAt:  ban.BannedAt,
		ExpiresAt: ban.ExpiresAt,
	}, nil
}

// CleanupExpiredBans deactivates bans whose expiry has passed and
// returns how many rows it touched.
func (s *ModerationService) CleanupExpiredBans(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.UserBan{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now().UnixMilli()).
		Update("is_active", false)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

// GetStats returns the admin dashboard counters. Moderator or admin.
func (s *ModerationService) GetStats(ctx context.Context, callerID string) (*ModerationStats, error) {
	if err := s.requireModerator(ctx, s.db, callerID, "Only moderators and admins can view stats"); err != nil {
		return nil, err
	}

	stats := &ModerationStats{}
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Count(&stats.Users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("is_deleted = ?", false).Count(&stats.Posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Report{}).Where("status = ?", models.ReportStatusPending).Count(&stats.PendingReports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	now := time.Now().UnixMilli()
	if err := s.db.WithContext(ctx).Model(&models.UserBan{}).
		Where("is_active = ? AND (expires_at IS NULL OR expires_at > ?)", true, now).
		Count(&stats.ActiveBans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}
