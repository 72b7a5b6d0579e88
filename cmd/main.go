package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/campusdine/eatery-availability/internal/config"
	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/handler"
	"github.com/campusdine/eatery-availability/internal/health"
	"github.com/campusdine/eatery-availability/internal/infra/eateryfeed"
	"github.com/campusdine/eatery-availability/internal/infra/favorites"
	"github.com/campusdine/eatery-availability/internal/infra/icsfeed"
	"github.com/campusdine/eatery-availability/internal/infra/statusrecorder"
	"github.com/campusdine/eatery-availability/internal/observability"
	"github.com/campusdine/eatery-availability/internal/observability/metrics"
	"github.com/campusdine/eatery-availability/internal/observability/middleware"
	"github.com/campusdine/eatery-availability/internal/service/directory"
	"github.com/campusdine/eatery-availability/internal/service/timing"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	shutdownMetrics, err := observability.InitMetrics(ctx, "eatery-availability", Version)
	if err != nil {
		slog.Error("failed to initialize metrics pipeline", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", slog.String("error", err.Error()))
		}
	}()

	availabilityMetrics, err := metrics.NewAvailabilityMetrics()
	if err != nil {
		slog.Error("failed to initialize availability metrics", slog.String("error", err.Error()))
		return 1
	}

	cal := domain.NewCalendar(cfg.Calendar.Location(), cfg.Calendar.FirstWeekday, slog.Default())
	slog.Info("calendar configured",
		slog.String("timezone", cfg.Calendar.Timezone),
		slog.String("first_weekday", cfg.Calendar.FirstWeekday.String()),
	)

	recorder, err := statusrecorder.NewRecorder(ctx, statusrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize status recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close status recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient, favoriteRepo, err := initFavorites(ctx, cfg.Redis)
	if err != nil {
		return 1
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
	}

	feedClient := eateryfeed.NewClient(cfg.Feed.URL, cal)

	var hours eateryfeed.HoursSource
	if len(cfg.Feed.ICSHoursSources) > 0 {
		sources := make([]icsfeed.Source, 0, len(cfg.Feed.ICSHoursSources))
		for _, s := range cfg.Feed.ICSHoursSources {
			sources = append(sources, icsfeed.Source{EateryID: s.EateryID, URL: s.URL})
		}
		hours = icsfeed.NewLoader(sources, cal)
		slog.Info("ics hours sources configured", slog.Int("source_count", len(sources)))
	}

	store := eateryfeed.NewStore(feedClient, hours, time.Duration(cfg.Feed.ICSHorizonDays)*24*time.Hour)
	if err := store.Refresh(ctx, time.Now()); err != nil {
		// The readiness probe fails until the first refresh lands, so a
		// slow upstream delays readiness rather than killing the process.
		slog.Warn("initial feed refresh failed, will retry on schedule",
			slog.String("error", err.Error()),
		)
	}
	go refreshLoop(ctx, store, time.Duration(cfg.Feed.RefreshMinutes)*time.Minute)

	directoryService := directory.NewService(
		store,
		favoriteRepo,
		timing.NewEstimator(cal),
		availabilityMetrics,
		recorder,
	)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteRepo)

	r := gin.New()
	r.Use(middleware.Gin(middleware.Config{
		SkipPaths: []string{"/health", "/health/live", "/health/ready"},
	}))
	r.Use(middleware.PanicRecovery())

	healthChecker := health.NewChecker(redisClient, store, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/eateries", directoryHandler.HandleList)
		v1.GET("/eateries/:id", directoryHandler.HandleGet)
		v1.GET("/eateries/:id/status", directoryHandler.HandleGetStatus)
		v1.GET("/eateries/:id/timing", directoryHandler.HandleGetTiming)
		v1.PUT("/eateries/:id/favorite", favoriteHandler.HandlePut)
		v1.DELETE("/eateries/:id/favorite", favoriteHandler.HandleDelete)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("feed_url", cfg.Feed.URL),
			slog.Int("refresh_minutes", cfg.Feed.RefreshMinutes),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

// initFavorites connects Redis when configured, otherwise keeps favorites
// in process memory. A configured but unreachable Redis is fatal; silent
// fallback there would quietly lose persisted favorites.
func initFavorites(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, domain.FavoriteRepository, error) {
	if cfg == nil {
		slog.Info("REDIS_ADDR not set, keeping favorites in memory")
		return nil, favorites.NewMemoryRepository(), nil
	}

	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Addr))
	return client, favorites.NewRedisRepository(client), nil
}

// refreshLoop re-pulls the feed on a fixed interval until ctx is done.
func refreshLoop(ctx context.Context, store *eateryfeed.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Refresh(ctx, time.Now()); err != nil {
				slog.WarnContext(ctx, "scheduled feed refresh failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
