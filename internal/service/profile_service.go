package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"nexum/internal/models"
	"nexum/internal/repository"
)

const usernameCooldown = 30 * 24 * time.Hour

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// ProfileService manages user profiles and username claims.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

type UpdateProfileInput struct {
	Username  string
	Bio       *string
	Website   *string
	Location  *string
	Birthday  *int64
	IsPrivate *bool
}

type UsernameAvailability struct {
	Available bool   `json:"available"`
	Username  string `json:"username"`
}

type UsernameResult struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return models.NewValidationError("Username must be 3-20 characters long and contain only lowercase letters, numbers, and underscores")
	}
	return nil
}

// cooldownRemaining returns the whole days left before the username can
// change again, or 0 when the cooldown has elapsed.
func cooldownRemaining(lastChange *int64, now time.Time) int {
	if lastChange == nil {
		return 0
	}
	elapsed := now.Sub(time.UnixMilli(*lastChange))
	if elapsed >= usernameCooldown {
		return 0
	}
	remaining := usernameCooldown - elapsed
	days := int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	return days
}

func (s *ProfileService) CheckUsernameAvailability(ctx context.Context, username string) (*UsernameAvailability, error) {
	normalized := normalizeUsername(username)
	existing, err := s.profileRepo.GetByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return &UsernameAvailability{Available: existing == nil, Username: normalized}, nil
}

func (s *ProfileService) InitializeProfile(ctx context.Context, userID, username string) (*UsernameResult, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Profile already exists")
	}

	normalized := normalizeUsername(username)
	if err := validateUsername(normalized); err != nil {
		return nil, err
	}

	taken, err := s.profileRepo.GetByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	profile := &models.Profile{
		UserID:   userID,
		Username: normalized,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return &UsernameResult{Success: true, Username: normalized}, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) error {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if in.Username != "" {
		normalized := normalizeUsername(in.Username)
		if err := validateUsername(normalized); err != nil {
			return err
		}

		taken, err := s.profileRepo.GetByUsername(ctx, normalized)
		if err != nil {
			return err
		}
		if taken != nil && taken.UserID != userID {
			return models.NewConflictError("Username is already taken")
		}

		if existing == nil {
			profile := &models.Profile{UserID: userID, Username: normalized}
			applyProfileFields(profile, in)
			return s.profileRepo.Create(ctx, profile)
		}

		if existing.Username != normalized {
			if days := cooldownRemaining(existing.LastUsernameChange, time.Now()); days > 0 {
				return models.NewValidationError(fmt.Sprintf("Username can only be changed once every 30 days. Try again in %d day(s).", days))
			}
			now := time.Now().UnixMilli()
			existing.LastUsernameChange = &now
		}
		existing.Username = normalized
		applyProfileFields(existing, in)
		return s.profileRepo.Update(ctx, existing)
	}

	if existing == nil {
		return models.NewValidationError("Username is required when creating a profile")
	}
	applyProfileFields(existing, in)
	return s.profileRepo.Update(ctx, existing)
}

func applyProfileFields(profile *models.Profile, in UpdateProfileInput) {
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.Website != nil {
		profile.Website = *in.Website
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
	if in.Birthday != nil {
		profile.Birthday = in.Birthday
	}
	if in.IsPrivate != nil {
		profile.IsPrivate = *in.IsPrivate
	}
}

// UpdateUsername changes just the username, enforcing the 30-day
// cooldown between changes.
func (s *ProfileService) UpdateUsername(ctx context.Context, userID, newUsername string) (*UsernameResult, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile not found")
	}

	normalized := normalizeUsername(newUsername)
	if err := validateUsername(normalized); err != nil {
		return nil, err
	}
	if normalized == profile.Username {
		return nil, models.NewValidationError("New username must be different from current username")
	}

	if days := cooldownRemaining(profile.LastUsernameChange, time.Now()); days > 0 {
		return nil, models.NewValidationError(fmt.Sprintf("Username can only be changed once every 30 days. Try again in %d day(s).", days))
	}

	taken, err := s.profileRepo.GetByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	now := time.Now().UnixMilli()
	profile.Username = normalized
	profile.LastUsernameChange = &now
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return &UsernameResult{Success: true, Username: normalized}, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.profileRepo.GetByUsername(ctx, normalizeUsername(username))
}

func (s *ProfileService) GetMyProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) SearchUsersByUsername(ctx context.Context, query string, limit int) ([]models.Profile, error) {
	term := normalizeUsername(query)
	if limit <= 0 {
		limit = 20
	}
	return s.profileRepo.Search(ctx, term, limit)
}

// SuggestUsername derives an available username from the caller's
// identity, probing numeric suffixes until a free one is found.
func (s *ProfileService) SuggestUsername(ctx context.Context, identity models.Identity) (string, error) {
	base := ""
	if identity.Email != "" {
		base = strings.SplitN(identity.Email, "@", 2)[0]
	} else if identity.Name != "" {
		base = identity.Name
	}

	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, base)
	if len(base) > 20 {
		base = base[:20]
	}
	if len(base) < 3 {
		base = fmt.Sprintf("user%d", rand.Intn(10000))
	}

	candidate := base
	for counter := 1; ; counter++ {
		existing, err := s.profileRepo.GetByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		if counter > 1000 {
			return fmt.Sprintf("%s%d", base, rand.Intn(100000)), nil
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}
}
