package service

import (
	"context"
	"strings"

	"nexum/internal/models"
	"nexum/internal/repository"
)

// CommentService handles comments and likes on comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, likeRepo repository.LikeRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, likeRepo: likeRepo}
}

// GetCommentsForPost returns a post's comments with like counts. The
// viewer may be empty for unauthenticated reads.
func (s *CommentService) GetCommentsForPost(ctx context.Context, viewerID string, postID uint) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		likeCount, err := s.likeRepo.CountForComment(ctx, comments[i].ID)
		if err != nil {
			return nil, err
		}
		comments[i].LikeCount = int(likeCount)
		if viewerID != "" {
			liked, err := s.likeRepo.UserLikedComment(ctx, viewerID, comments[i].ID)
			if err != nil {
				return nil, err
			}
			comments[i].IsLikedByCurrentUser = liked
		}
	}
	return comments, nil
}

func (s *CommentService) CreateComment(ctx context.Context, userID string, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}

	comment := &models.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, userID string, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment not found")
	}
	if comment.UserID != userID {
		return nil, models.NewAuthorizationError("Not authorized to update this comment")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID string, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return models.NewNotFoundError("Comment not found")
	}
	if comment.UserID != userID {
		return models.NewAuthorizationError("Not authorized to delete this comment")
	}
	return s.commentRepo.SoftDelete(ctx, commentID)
}

func (s *CommentService) LikeComment(ctx context.Context, userID string, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return models.NewNotFoundError("Comment not found")
	}

	liked, err := s.likeRepo.UserLikedComment(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if liked {
		return models.NewConflictError("Comment already liked")
	}

	_, err = s.likeRepo.CreateForComment(ctx, userID, commentID)
	return err
}

func (s *CommentService) UnlikeComment(ctx context.Context, userID string, commentID uint) error {
	return s.likeRepo.DeleteForComment(ctx, userID, commentID)
}
