package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"knowledgehub/internal/assistant"
	"knowledgehub/internal/auth"
	"knowledgehub/internal/config"
	"knowledgehub/internal/database"
	"knowledgehub/internal/database/migration"
	handlers "knowledgehub/internal/http/handler"
	"knowledgehub/internal/http/middleware"
	"knowledgehub/internal/otel"
	"knowledgehub/internal/repository/postgres"
	"knowledgehub/internal/service"
	"knowledgehub/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	ctx := context.Background()
	loc := time.UTC

	// Tracing is a no-op when OTEL_SDK_DISABLED=true
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Redis backs sessions and password reset tokens
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	store := auth.NewRedisStore(redisClient)

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	if err != nil {
		log.Fatalf("failed to initialize token manager: %v", err)
	}

	// Repositories
	docRepo := postgres.NewDocumentPostgres(db)
	attRepo := postgres.NewAttachmentPostgres(db)
	faqRepo := postgres.NewFAQPostgres(db)
	subRepo := postgres.NewFAQSubmissionPostgres(db)
	profileRepo := postgres.NewProfilePostgres(db)
	categoryRepo := postgres.NewCategoryPostgres(db)
	activityRepo := postgres.NewActivityLogPostgres(db)
	statsRepo := postgres.NewStatsPostgres(db)

	// Services
	svcs := handlers.Services{
		Auth: service.NewAuthService(profileRepo, tokenManager, store, store, activityRepo,
			cfg.Auth.SessionTTL, cfg.Auth.ResetTokenTTL),
		Documents:  service.NewDocumentService(docRepo, attRepo, objStore, activityRepo),
		Attachment: service.NewAttachmentService(attRepo, docRepo, objStore, cfg.Upload.MaxBytes),
		FAQ:        service.NewFAQService(faqRepo, subRepo, activityRepo),
		Users:      service.NewUserService(profileRepo, activityRepo),
		Categories: service.NewCategoryService(categoryRepo),
		Analytics:  service.NewAnalyticsService(statsRepo, activityRepo),
		Assistant:  service.NewAssistantService(assistant.NewClient(cfg.Assistant, nil), docRepo, activityRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMW.Handler())

	limiter := middleware.NewRateLimiter(20, 40)

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, tokenManager, limiter, svcs)

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}),
	)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
