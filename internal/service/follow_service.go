package service

import (
	"context"

	"nexum/internal/models"
	"nexum/internal/repository"
)

// FollowService maintains the directed follower graph.
type FollowService struct {
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository
}

type FollowStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

func NewFollowService(followRepo repository.FollowRepository, profileRepo repository.ProfileRepository) *FollowService {
	return &FollowService{followRepo: followRepo, profileRepo: profileRepo}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return models.NewValidationError("Cannot follow yourself")
	}

	target, err := s.profileRepo.GetByUserID(ctx, followingID)
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("Profile not found")
	}

	return s.followRepo.Create(ctx, followerID, followingID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	return s.followRepo.Delete(ctx, followerID, followingID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

func (s *FollowService) GetFollowStats(ctx context.Context, userID string) (*FollowStats, error) {
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FollowStats{Followers: followers, Following: following}, nil
}

// GetFollowers returns the profiles following the given user.
func (s *FollowService) GetFollowers(ctx context.Context, userID string) ([]models.ProfileSummary, error) {
	ids, err := s.followRepo.ListFollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.profileRepo.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProfileSummary, 0, len(ids))
	for _, id := range ids {
		if summary, ok := summaries[id]; ok {
			out = append(out, summary)
		}
	}
	return out, nil
}
