package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/participants-admin/config"
	"github.com/Dosada05/participants-admin/db"
	"github.com/Dosada05/participants-admin/handlers"
	"github.com/Dosada05/participants-admin/models"
	"github.com/Dosada05/participants-admin/notify"
	"github.com/Dosada05/participants-admin/repositories"
	api "github.com/Dosada05/participants-admin/routes"
	"github.com/Dosada05/participants-admin/services"
	"github.com/Dosada05/participants-admin/storage"
	"github.com/go-chi/chi/v5"
)

const seedTimeout = 10 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("seed_source", cfg.SeedSource))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Объектное хранилище (Cloudflare R2) опционально: экспорт и сид из бакета.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	seed, err := loadSeed(ctx, cfg, uploader, logger)
	if err != nil {
		logger.Error("failed to load participant seed", slog.Any("error", err))
		os.Exit(1)
	}

	participantRepo, err := repositories.NewMemoryParticipantRepository(seed)
	if err != nil {
		logger.Error("failed to initialize participant repository", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("participants seeded", slog.Int("count", participantRepo.Len()))

	// WebSocket Hub для баннеров уведомлений
	wsHub := notify.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	participantService := services.NewParticipantService(
		participantRepo,
		notify.NewFanout(wsHub, notify.NewLogNotifier(logger)),
		services.ParticipantServiceConfig{
			Title:    "Participants for " + cfg.CourseTitle,
			Uploader: uploader,
		},
		logger,
	)

	participantHandler := handlers.NewParticipantHandler(participantService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			JWTSecret:      []byte(cfg.JWTSecretKey),
			AllowedOrigins: cfg.CORSAllowedOrigins,
		},
		participantHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	stop()
	logger.Info("application exited")
}

func loadSeed(ctx context.Context, cfg *config.Config, uploader storage.FileUploader, logger *slog.Logger) ([]models.Participant, error) {
	seedCtx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	switch cfg.SeedSource {
	case config.SeedSourcePostgres:
		dbConn, err := db.Connect(seedCtx, cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}()
		return repositories.NewPostgresSeed(dbConn).Load(seedCtx)
	case config.SeedSourceObject:
		if uploader == nil {
			return nil, errors.New("object seed requires R2 storage")
		}
		return repositories.NewObjectSeed(uploader, cfg.SeedObjectKey).Load(seedCtx)
	default:
		return repositories.NewFixtureSeed().Load(seedCtx)
	}
}
