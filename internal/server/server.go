package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gazette/internal/cache"
	"gazette/internal/config"
	"gazette/internal/database"
	"gazette/internal/middleware"
	"gazette/internal/models"
	"gazette/internal/repository"
	"gazette/internal/service"

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

// bodyLimitBytes caps request bodies. Uploads above the service's 5MB
// filter but under this limit get the filter's 400; anything larger is cut
// off here with a 413.
const bodyLimitBytes = 8 * 1024 * 1024

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository

	authService     *service.AuthService
	userService     *service.UserService
	categoryService *service.CategoryService
	postService     *service.PostService
	commentService  *service.CommentService
	uploadService   *service.UploadService
}

// NewServer creates a server instance, establishing the database and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("gazette-api"),
		userRepo:       repository.NewUserRepository(db),
		categoryRepo:   repository.NewCategoryRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
	}

	s.authService = service.NewAuthService(s.userRepo, cfg)
	s.userService = service.NewUserService(s.userRepo)
	s.categoryService = service.NewCategoryService(s.categoryRepo)
	s.postService = service.NewPostService(s.postRepo, s.categoryRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo)
	s.uploadService = service.NewUploadService(cfg)

	return s, nil
}

// SetupMiddleware configures the middleware stack for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(middleware.TracingMiddleware())

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

	// Global per-IP rate limit.
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
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	authRequired := middleware.AuthRequired(s.userRepo)
	softAuth := middleware.SoftAuth(s.userRepo)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	writers := middleware.RequireRole(models.RoleAdmin, models.RoleAuthor)

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images are served as plain static files.
	app.Static("/uploads", s.config.PublicDir+"/uploads")

	api := app.Group("/api/v1")
	api.Get("/", s.Welcome)
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Gazette Metrics Dashboard",
	}))

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", authRequired, s.Me)

	users := api.Group("/users", authRequired)
	users.Get("/", adminOnly, s.GetUsers)
	users.Post("/", adminOnly, s.CreateUser)
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", adminOnly, s.DeleteUser)

	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Get("/:identifier", s.GetCategory)
	categories.Post("/", authRequired, writers, s.CreateCategory)
	categories.Put("/:id", authRequired, writers, s.UpdateCategory)
	categories.Delete("/:id", authRequired, adminOnly, s.DeleteCategory)

	posts := api.Group("/posts")
	// The dashboard route must precede the identifier route or fiber
	// would treat "dashboard" as an identifier.
	posts.Get("/dashboard/all", authRequired, writers, s.GetDashboardPosts)
	posts.Get("/", softAuth, s.GetPosts)
	posts.Get("/:identifier", softAuth, s.GetPost)
	posts.Post("/", authRequired, writers, s.CreatePost)
	posts.Put("/:id", authRequired, writers, s.UpdatePost)
	posts.Delete("/:id", authRequired, writers, s.DeletePost)

	api.Post("/post/:postId/comments", softAuth, middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment)
	api.Get("/post/:postId/comments", s.GetComments)
	api.Delete("/comments/:commentId", authRequired, s.DeleteComment)

	api.Post("/upload/image", authRequired, writers, s.UploadImage)
}

// Welcome greets API consumers at the base path.
func (s *Server) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to the Gazette API"})
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional, so
// its absence degrades the report without failing readiness.
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

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// newApp builds the fiber application with the error handler every route
// shares.
func (s *Server) newApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "Gazette API",
		BodyLimit: bodyLimitBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *models.AppError
			if errors.As(err, &appErr) {
				return models.RespondWithError(c, appErr)
			}

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
					return models.RespondWithError(c,
						models.NewTooLargeError("Request body too large"))
				}
				return c.Status(fiberErr.Code).JSON(models.ErrorResponse{
					Message: fiberErr.Message,
				})
			}

			slog.Error("unhandled error", "error", err, "path", c.Path())
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := s.newApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	slog.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", "error", rerr)
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
