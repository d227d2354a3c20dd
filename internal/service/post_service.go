package service

import (
	"context"
	"log/slog"
	"strings"

	"nexum/internal/models"
	"nexum/internal/repository"
)

// ImageDeleter removes previously uploaded assets from the image host.
type ImageDeleter interface {
	Delete(ctx context.Context, publicID string) error
}

// PostService handles posts, likes on posts, and the delete cascade.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	images      ImageDeleter
}

type CreatePostInput struct {
	UserID        string
	Content       string
	ImageURL      string
	ImagePublicID string
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, images ImageDeleter) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo, likeRepo: likeRepo, images: images}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Post content is required")
	}

	post := &models.Post{
		UserID:        in.UserID,
		Content:       in.Content,
		Image:         in.ImageURL,
		ImagePublicID: in.ImagePublicID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetAllPosts returns the feed with like and comment counts. The viewer
// may be empty for unauthenticated reads.
func (s *PostService) GetAllPosts(ctx context.Context, viewerID string, limit, offset int) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.decoratePosts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) GetPostByID(ctx context.Context, viewerID string, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}

	posts := []models.Post{*post}
	if err := s.decoratePosts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (s *PostService) GetPostsByUser(ctx context.Context, viewerID, userID string) ([]models.Post, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.decoratePosts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) decoratePosts(ctx context.Context, viewerID string, posts []models.Post) error {
	for i := range posts {
		likeCount, err := s.likeRepo.CountForPost(ctx, posts[i].ID)
		if err != nil {
			return err
		}
		commentCount, err := s.commentRepo.CountForPost(ctx, posts[i].ID)
		if err != nil {
			return err
		}
		posts[i].LikeCount = int(likeCount)
		posts[i].CommentCount = int(commentCount)
		if viewerID != "" {
			liked, err := s.likeRepo.UserLikedPost(ctx, viewerID, posts[i].ID)
			if err != nil {
				return err
			}
			posts[i].IsLikedByCurrentUser = liked
		}
	}
	return nil
}

func (s *PostService) UpdatePost(ctx context.Context, userID string, postID uint, content string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}
	if post.UserID != userID {
		return nil, models.NewAuthorizationError("Not authorized to update this post")
	}

	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post with its likes and comments. The image host
// delete is best effort; a failure there is logged and does not block
// the cascade.
func (s *PostService) DeletePost(ctx context.Context, userID string, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post not found")
	}
	if post.UserID != userID {
		return models.NewAuthorizationError("Not authorized to delete this post")
	}

	if post.ImagePublicID != "" && s.images != nil {
		if err := s.images.Delete(ctx, post.ImagePublicID); err != nil {
			slog.WarnContext(ctx, "failed to delete post image from host",
				slog.Uint64("post_id", uint64(postID)),
				slog.String("public_id", post.ImagePublicID),
				slog.Any("error", err))
		}
	}

	return s.postRepo.DeleteCascade(ctx, postID)
}

func (s *PostService) LikePost(ctx context.Context, userID string, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post not found")
	}

	liked, err := s.likeRepo.UserLikedPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	if liked {
		return models.NewConflictError("Post already liked")
	}

	_, err = s.likeRepo.CreateForPost(ctx, userID, postID)
	return err
}

func (s *PostService) UnlikePost(ctx context.Context, userID string, postID uint) error {
	return s.likeRepo.DeleteForPost(ctx, userID, postID)
}

func (s *PostService) GetLikesForPost(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.likeRepo.ListForPost(ctx, postID)
}
