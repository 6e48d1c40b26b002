package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/database/migration"
	"vidtube/internal/events"
	handlers "vidtube/internal/http/handler"
	"vidtube/internal/http/middleware"
	"vidtube/internal/otel"
	"vidtube/internal/repository/postgres"
	"vidtube/internal/service"
	"vidtube/internal/storage"
	"vidtube/internal/upload"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// PostgreSQL connection with pooling via database/sql
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Domain event publisher; disabled when no Redis address is configured
	pub := events.NewPublisher(cfg.Redis)
	defer pub.Close()

	playlistRepo := postgres.NewPlaylistPostgres(db)
	videoRepo := postgres.NewVideoPostgres(db)

	uploader := upload.New(objStore, "videos", time.Duration(cfg.Upload.PresignExpirySec)*time.Second)

	playlistSvc := service.NewPlaylistService(playlistRepo, videoRepo, pub)
	videoSvc := service.NewVideoService(uploader, objStore, videoRepo, pub)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    100 * 1024 * 1024, // video uploads
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, playlistSvc, videoSvc, middleware.Auth(cfg.Auth.JWTSecret), cfg.Upload.StagingDir)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
