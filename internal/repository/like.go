package repository

import (
	"context"
	"errors"

	"nexum/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for post and comment likes.
type LikeRepository interface {
	CreateForPost(ctx context.Context, userID string, postID uint) (*models.Like, error)
	CreateForComment(ctx context.Context, userID string, commentID uint) (*models.Like, error)
	DeleteForPost(ctx context.Context, userID string, postID uint) error
	DeleteForComment(ctx context.Context, userID string, commentID uint) error
	UserLikedPost(ctx context.Context, userID string, postID uint) (bool, error)
	UserLikedComment(ctx context.Context, userID string, commentID uint) (bool, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
	CountForComment(ctx context.Context, commentID uint) (int64, error)
	ListForPost(ctx context.Context, postID uint) ([]models.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) CreateForPost(ctx context.Context, userID string, postID uint) (*models.Like, error) {
	like := models.Like{UserID: userID, PostID: &postID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewConflictError("Post already liked")
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *likeRepository) CreateForComment(ctx context.Context, userID string, commentID uint) (*models.Like, error) {
	like := models.Like{UserID: userID, CommentID: &commentID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewConflictError("Comment already liked")
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *likeRepository) DeleteForPost(ctx context.Context, userID string, postID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like not found")
	}
	return nil
}

func (r *likeRepository) DeleteForComment(ctx context.Context, userID string, commentID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like not found")
	}
	return nil
}

func (r *likeRepository) UserLikedPost(ctx context.Context, userID string, postID uint) (bool, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *likeRepository) UserLikedComment(ctx context.Context, userID string, commentID uint) (bool, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) CountForComment(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) ListForPost(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}
