//	@title			Imgbed File API
//	@version		1.0
//	@description	File deletion service for R2 and Telegram backed uploads.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/imgbed/service/internal/asset"
	"github.com/imgbed/service/internal/config"
	"github.com/imgbed/service/internal/db"
	"github.com/imgbed/service/internal/metadata"
	"github.com/imgbed/service/internal/metrics"
	appMiddleware "github.com/imgbed/service/internal/middleware"
	"github.com/imgbed/service/internal/response"
	"github.com/imgbed/service/internal/storage"
	"github.com/imgbed/service/internal/telegram"

	_ "github.com/imgbed/service/docs/swagger"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", err)
	}

	ctx := context.Background()

	store, closeStore, err := openMetadataStore(ctx, cfg)
	if err != nil {
		fatal("metadata store init failed", err)
	}
	defer closeStore()

	// Wire dependencies: bindings → service → handler
	bindings := asset.Bindings{Store: store, ChatID: cfg.TelegramChatID}

	if cfg.HasObjectStorage() {
		objects, err := storage.NewMinioStorage(ctx,
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StorageRegion,
			cfg.StorageUseSSL,
		)
		if err != nil {
			fatal("object storage init failed", err)
		}
		bindings.Objects = objects
	} else {
		logger.Warn("object storage not configured; R2 deletions will fail")
	}

	if cfg.HasTelegram() {
		// Telegram deletes are best-effort; R2 deletions keep working without a bot.
		bot, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramAPIEndpoint, nil)
		if err != nil {
			logger.Warn("telegram init failed; message deletions will be reported as failed", slog.Any("error", err))
		} else {
			bindings.Messages = bot
		}
	} else {
		logger.Warn("telegram not configured; message deletions will be reported as failed")
	}

	m := metrics.New()
	fileSvc := asset.NewService(bindings, m, logger)
	fileHandler := asset.NewHandler(fileSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(appMiddleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := fileSvc.Ping(r.Context()); err != nil {
			logger.Error("health check failed", slog.Any("error", err))
			response.Error(w, http.StatusServiceUnavailable, "metadata store unavailable")
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", m.Handler())

	// Swagger UI at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Delete("/files/*", fileHandler.Delete)
	})

	// Older clients call the management path.
	r.Delete("/api/manage/delete/*", fileHandler.Delete)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", slog.String("port", cfg.Port), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	<-quit
	logger.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", slog.Any("error", err))
	}

	logger.Info("server stopped")
}

// openMetadataStore connects the configured metadata backend.
func openMetadataStore(ctx context.Context, cfg *config.Config) (metadata.Store, func(), error) {
	switch cfg.MetadataBackend {
	case config.MetadataNATS:
		store, err := metadata.ConnectNATS(ctx, cfg.NatsURL, cfg.NatsBucket)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return metadata.NewPostgresStore(pool), pool.Close, nil
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
