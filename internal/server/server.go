// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"nexum/internal/cache"
	"nexum/internal/config"
	"nexum/internal/database"
	"nexum/internal/images"
	"nexum/internal/middleware"
	"nexum/internal/models"
	"nexum/internal/observability"
	"nexum/internal/repository"
	"nexum/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	imageClient    *images.Client

	profileRepo repository.ProfileRepository
	roleRepo    repository.RoleRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository
	convRepo    repository.ConversationRepository
	groupRepo   repository.GroupRepository

	profileService    *service.ProfileService
	roleService       *service.RoleService
	postService       *service.PostService
	commentService    *service.CommentService
	followService     *service.FollowService
	messageService    *service.MessageService
	groupService      *service.GroupService
	moderationService *service.ModerationService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("nexum-api"),
		profileRepo:    repository.NewProfileRepository(db),
		roleRepo:       repository.NewRoleRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		convRepo:       repository.NewConversationRepository(db),
		groupRepo:      repository.NewGroupRepository(db),
	}

	server.imageClient = images.NewClient(cfg.ImageHostURL, cfg.ImageHostKey)

	server.profileService = service.NewProfileService(server.profileRepo)
	server.roleService = service.NewRoleService(server.roleRepo)
	server.postService = service.NewPostService(server.postRepo, server.commentRepo, server.likeRepo, server.imageClient)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo, server.likeRepo)
	server.followService = service.NewFollowService(server.followRepo, server.profileRepo)
	server.messageService = service.NewMessageService(server.convRepo, server.profileRepo)
	server.groupService = service.NewGroupService(server.groupRepo, server.profileRepo)
	server.moderationService = service.NewModerationService(db)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: observability.GenerateCorrelationID,
	}))

	if s.config.TracingEnabled {
		app.Use(middleware.Tracing())
	}

	// Propagates request ID and user ID into the request context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Nexum Metrics Dashboard",
	}))

	// Public profile routes
	profiles := api.Group("/profiles")
	profiles.Get("/check-username", s.CheckUsernameAvailability)
	profiles.Get("/search", s.SearchProfiles)
	profiles.Get("/me", middleware.AuthRequired, s.GetMyProfile)
	profiles.Get("/suggest-username", middleware.AuthRequired, s.SuggestUsername)
	profiles.Get("/by-username/:username", s.GetProfileByUsername)
	profiles.Get("/:userId", s.GetProfile)
	profiles.Post("/", middleware.AuthRequired, s.InitializeProfile)
	profiles.Put("/me", middleware.AuthRequired, s.UpdateMyProfile)
	profiles.Put("/me/username", middleware.AuthRequired, s.UpdateUsername)

	// Public post reads; like state resolves when a token is present
	publicPosts := api.Group("/posts", middleware.AuthOptional)
	publicPosts.Get("/", s.GetPosts)
	publicPosts.Get("/:id/comments", s.GetComments)
	publicPosts.Get("/:id/likes", s.GetPostLikes)
	publicPosts.Get("/:id", s.GetPost)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	posts := protected.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	protected.Post("/images", s.UploadImage)

	comments := protected.Group("/comments")
	comments.Post("/:id/like", s.LikeComment)
	comments.Delete("/:id/like", s.UnlikeComment)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	users := protected.Group("/users")
	users.Get("/:userId/posts", s.GetUserPosts)
	users.Get("/:userId/follow-stats", s.GetFollowStats)
	users.Get("/:userId/followers", s.GetFollowers)
	users.Get("/:userId/follow-status", s.GetFollowStatus)
	users.Post("/:userId/follow", s.FollowUser)
	users.Delete("/:userId/follow", s.UnfollowUser)
	users.Get("/:userId/ban-status", s.CheckBanStatus)

	conversations := protected.Group("/conversations")
	conversations.Post("/", s.GetOrCreateConversation)
	conversations.Get("/", s.GetMyConversations)
	conversations.Get("/:id/messages", s.GetMessages)
	conversations.Post("/:id/messages", s.SendMessage)
	conversations.Post("/:id/read", s.MarkConversationRead)
	conversations.Get("/:id", s.GetConversationInfo)

	messages := protected.Group("/messages")
	messages.Delete("/:id", s.DeleteMessage)

	groups := protected.Group("/groups")
	groups.Post("/", s.CreateGroup)
	groups.Get("/", s.GetMyGroups)
	groups.Get("/default", s.GetDefaultGroup)
	groups.Post("/default/join", s.JoinDefaultGroup)
	groups.Get("/:id/messages", s.GetGroupMessages)
	groups.Post("/:id/messages", s.SendGroupMessage)
	groups.Post("/:id/members", s.AddGroupMembers)
	groups.Delete("/:id/members/:userId", s.RemoveGroupMember)
	groups.Post("/:id/leave", s.LeaveGroup)
	groups.Get("/:id", s.GetGroupInfo)
	groups.Delete("/:id", s.DeleteGroup)

	groupMessages := protected.Group("/group-messages")
	groupMessages.Delete("/:id", s.DeleteGroupMessage)

	reports := protected.Group("/reports")
	reports.Post("/", s.CreateReport)
	reports.Get("/", s.GetReports)
	reports.Post("/:id/review", s.ReviewReport)

	admin := protected.Group("/admin")
	admin.Get("/role", s.GetMyRole)
	admin.Post("/roles", s.GrantRole)
	admin.Post("/bans", s.BanUser)
	admin.Delete("/bans/:userId", s.UnbanUser)
	admin.Post("/bans/cleanup", s.CleanupExpiredBans)
	admin.Delete("/posts/:id", s.AdminDeletePost)
	admin.Delete("/comments/:id", s.AdminDeleteComment)
	admin.Get("/audit-logs", s.GetAuditLogs)
	admin.Get("/stats", s.GetStats)
	admin.Post("/groups/default", s.InitializeDefaultGroup)

	presence := protected.Group("/presence")
	presence.Put("/me", s.SetPresence)
	presence.Get("/typing/:scope/:id", s.ListTyping)
	presence.Put("/typing/:scope/:id", s.SetTyping)
	presence.Delete("/typing/:scope/:id", s.ClearTyping)
	presence.Get("/:userId", s.GetPresence)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Nexum API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
