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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/roomus/rooms-api/internal/config"
	"github.com/roomus/rooms-api/internal/database"
	"github.com/roomus/rooms-api/internal/entity"
	"github.com/roomus/rooms-api/internal/handler"
	"github.com/roomus/rooms-api/internal/logger"
	middlewarepkg "github.com/roomus/rooms-api/internal/middleware"
	"github.com/roomus/rooms-api/internal/repository"
	"github.com/roomus/rooms-api/internal/router"
	"github.com/roomus/rooms-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logger.Options{Level: level, Format: cfg.LogFormat})
	slog.SetDefault(log)
	if err != nil {
		log.Warn("unknown LOG_LEVEL, using info", slog.String("value", cfg.LogLevel))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	listings, source, err := loadListings(ctx, cfg)
	cancel()
	if err != nil {
		log.Error("failed to load listings", slog.String("error", err.Error()))
		os.Exit(1)
	}

	listingsRepo, err := repository.NewMemoryListingsRepository(listings)
	if err != nil {
		log.Error("invalid listings", slog.String("source", source), slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("listings loaded", slog.String("source", source), slog.Int("count", listingsRepo.Len()))

	var worker handler.WorkerPoster
	if cfg.ContactWorkerURL != "" {
		workerClient, err := handler.NewWorkerClient(nil, cfg.ContactWorkerURL)
		if err != nil {
			log.Error("failed to configure contact worker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		worker = workerClient
		log.Info("contact relay enabled", slog.String("worker", cfg.ContactWorkerURL))
	}

	roomsService := service.NewRoomsService(listingsRepo)
	contactService := service.NewContactService(cfg.ContactPhoneRegion)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Rooms:   handler.NewRoomsHandler(roomsService),
		Contact: handler.NewContactHandler(contactService, worker, log),
		Health:  handler.NewHealthHandler(listingsRepo),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("port", cfg.Port))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// loadListings picks the listing source: a Postgres snapshot when
// DATABASE_URL is set, then LISTINGS_FILE, then the bundled fixture.
func loadListings(ctx context.Context, cfg *config.Config) ([]entity.Listing, string, error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, "postgres", err
		}
		defer pool.Close()
		listings, err := repository.LoadListingsFromPostgres(ctx, pool)
		return listings, "postgres", err
	case cfg.ListingsFile != "":
		listings, err := repository.LoadListingsFile(cfg.ListingsFile)
		return listings, cfg.ListingsFile, err
	default:
		listings, err := repository.DefaultListings()
		return listings, "embedded fixture", err
	}
}
