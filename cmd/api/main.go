package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pawprints/pawprints-backend/internal/config"
	"github.com/pawprints/pawprints-backend/internal/handler"
	"github.com/pawprints/pawprints-backend/internal/middleware"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/internal/service"
	"github.com/pawprints/pawprints-backend/pkg/database"
	"github.com/pawprints/pawprints-backend/pkg/email"
	"github.com/pawprints/pawprints-backend/pkg/logger"
	"github.com/pawprints/pawprints-backend/pkg/qrcode"
	"github.com/pawprints/pawprints-backend/pkg/storage"
	"github.com/pawprints/pawprints-backend/pkg/utils"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()

	cfg := config.LoadConfig()

	// Initialize database
	db := database.NewDatabase()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Storage services
	r2Storage, err := storage.NewR2Storage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage", zap.Error(err))
	}
	mediaService := storage.NewCloudinary(cfg.Cloudinary)

	// Email service
	emailService := email.NewEmailService(log)

	// QR service
	qrService := qrcode.NewQRService(cfg.PublicBaseURL)

	// Services
	authService := service.NewAuthService(userRepo, emailService)
	userService := service.NewUserService(userRepo)
	photoService := service.NewPhotoService(photoRepo, tagRepo, r2Storage, mediaService, log)
	tagService := service.NewTagService(tagRepo, photoRepo, cfg)
	commentService := service.NewCommentService(commentRepo, photoRepo)

	// Validator
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	photoHandler := handler.NewPhotoHandler(photoService, tagService, qrService, validator)
	tagHandler := handler.NewTagHandler(tagService, validator)
	commentHandler := handler.NewCommentHandler(commentService, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://pawprints.photos, https://www.pawprints.photos, http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Healthcheck
	api.Get("/healthchecker", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Database is not reachable"))
		}
		return c.JSON(models.SuccessResponse(nil, "Welcome to PawPrints"))
	})

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public photo reads
	api.Get("/photos/:id", photoHandler.GetPhoto)
	api.Get("/photos/:id/tags", tagHandler.GetPhotoTags)
	api.Get("/photos/:id/comments", commentHandler.GetPhotoComments)
	api.Get("/photos/:id/qrcode", photoHandler.GetPhotoQRCode)
	api.Get("/tags", tagHandler.GetAllTags)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)

		// Photo routes
		photos := api.Group("/photos")
		photos.Post("/", photoHandler.UploadPhoto)
		photos.Get("/", photoHandler.GetMyPhotos)
		photos.Put("/:id", photoHandler.UpdatePhoto)
		photos.Delete("/:id", photoHandler.DeletePhoto)
		photos.Post("/:id/transform", photoHandler.TransformPhoto)
		photos.Post("/:id/tags", tagHandler.AddTagsToPhoto)
		photos.Post("/:id/comments", commentHandler.CreateComment)

		// Comment routes
		comments := api.Group("/comments")
		comments.Put("/:id", commentHandler.UpdateComment)
		comments.Delete("/:id", commentHandler.DeleteComment)

		// Admin routes
		admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		admin.Get("/tags/:id", tagHandler.GetTag)
		admin.Put("/tags/:id", tagHandler.RenameTag)
		admin.Delete("/tags/:id", tagHandler.DeleteTag)
		admin.Put("/users/:id/role", userHandler.UpdateUserRole)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
