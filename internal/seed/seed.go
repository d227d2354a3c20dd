// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"nexum/internal/models"
	"nexum/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with development fixtures.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db: db,
		//nolint:gosec // Weak random number generator is fine for seeding
		r: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed populates the database with test data.
func (s *Seeder) Seed(ctx context.Context, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	profiles, err := s.createProfiles(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create profiles: %w", err)
	}
	log.Printf("%d profiles created", len(profiles))

	if err := s.createFollows(ctx, profiles); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	posts, err := s.createPosts(ctx, profiles, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.createEngagement(ctx, profiles, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := s.createDefaultGroup(ctx, profiles); err != nil {
		return fmt.Errorf("failed to create default group: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE audit_logs, reports, user_bans, user_roles, system_groups,
		group_messages, group_members, groups, messages, conversations,
		likes, comments, posts, follows, profiles RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

func (s *Seeder) createProfiles(ctx context.Context, count int) ([]models.Profile, error) {
	repo := repository.NewProfileRepository(s.db)

	profiles := make([]models.Profile, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username())
		username = sanitizeUsername(username)
		if len(username) < 3 {
			username = fmt.Sprintf("user%d", s.r.Intn(100000))
		}
		// Suffix to dodge collisions in one run.
		username = fmt.Sprintf("%s%d", username, i)
		if len(username) > 20 {
			username = username[:20]
		}

		profile := models.Profile{
			UserID:   uuid.NewString(),
			Username: username,
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
			Bio:      gofakeit.Sentence(8),
			Location: gofakeit.City(),
		}
		if s.r.Intn(4) == 0 {
			profile.Website = gofakeit.URL()
		}
		if s.r.Intn(10) == 0 {
			profile.IsPrivate = true
		}

		if err := repo.Create(ctx, &profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func sanitizeUsername(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, s)
}

func (s *Seeder) createFollows(ctx context.Context, profiles []models.Profile) error {
	repo := repository.NewFollowRepository(s.db)

	for i := range profiles {
		followCount := s.r.Intn(8)
		for j := 0; j < followCount; j++ {
			target := profiles[s.r.Intn(len(profiles))]
			if target.UserID == profiles[i].UserID {
				continue
			}
			// Duplicate pairs hit the unique index; skip them.
			if err := repo.Create(ctx, profiles[i].UserID, target.UserID); err != nil {
				continue
			}
		}
	}
	return nil
}

func (s *Seeder) createPosts(ctx context.Context, profiles []models.Profile, count int) ([]models.Post, error) {
	repo := repository.NewPostRepository(s.db)

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := profiles[s.r.Intn(len(profiles))]
		post := models.Post{
			UserID:  author.UserID,
			Content: gofakeit.Paragraph(1, 3, 8, "\n"),
		}
		if s.r.Intn(3) == 0 {
			post.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		if err := repo.Create(ctx, &post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) createEngagement(ctx context.Context, profiles []models.Profile, posts []models.Post) error {
	commentRepo := repository.NewCommentRepository(s.db)
	likeRepo := repository.NewLikeRepository(s.db)

	for _, post := range posts {
		likerCount := s.r.Intn(6)
		for i := 0; i < likerCount; i++ {
			liker := profiles[s.r.Intn(len(profiles))]
			if _, err := likeRepo.CreateForPost(ctx, liker.UserID, post.ID); err != nil {
				continue
			}
		}

		commentCount := s.r.Intn(4)
		for i := 0; i < commentCount; i++ {
			commenter := profiles[s.r.Intn(len(profiles))]
			comment := models.Comment{
				UserID:  commenter.UserID,
				PostID:  post.ID,
				Content: gofakeit.Sentence(10),
			}
			if err := commentRepo.Create(ctx, &comment); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) createDefaultGroup(ctx context.Context, profiles []models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	repo := repository.NewGroupRepository(s.db)

	existing, err := repo.GetActiveSystemGroup(ctx, models.SystemGroupDefault)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	admin := profiles[0]
	memberIDs := make([]string, 0, len(profiles)-1)
	for _, profile := range profiles[1:] {
		memberIDs = append(memberIDs, profile.UserID)
	}

	group := models.Group{
		Name:        "Nexum Chat",
		Description: "Welcome to Nexum Chat! Connect with everyone in the community.",
		CreatedByID: admin.UserID,
	}
	if err := repo.CreateWithMembers(ctx, &group, memberIDs); err != nil {
		return err
	}
	return repo.CreateSystemGroup(ctx, &models.SystemGroup{
		GroupID:  group.ID,
		Type:     models.SystemGroupDefault,
		IsActive: true,
	})
}
