// Package app wires configuration, stores, services and the HTTP router
// into one runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-balance/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-balance/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-balance/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-balance/internal/config"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
	"github.com/comitanigiacomo/kanso-balance/internal/core/workers"
)

type App struct {
	Config   config.Config
	Catalog  *domain.Catalog
	Location *time.Location
	Clock    services.Clock

	Tasks     *services.TaskService
	Habits    *services.HabitService
	Scores    *services.ScoreService
	Snapshots *services.SnapshotService
	Wheel     *services.WheelService

	// SnapshotWorker is nil when SnapshotInterval is 0.
	SnapshotWorker *workers.SnapshotWorker

	Router *gin.Engine

	redis *redis.Client
}

// New builds the application. A nil clock means the system clock in the
// configured timezone.
func New(cfg config.Config, clock services.Clock) (*App, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if clock == nil {
		clock = services.NewSystemClock(loc)
	}

	taskRepo := repository.NewInMemoryTaskRepository()
	habitRepo := repository.NewInMemoryHabitRepository()
	snapshotRepo := repository.NewInMemorySnapshotRepository()
	wheelRepo := repository.NewInMemoryWheelRepository()

	a := &App{
		Config:   cfg,
		Catalog:  catalog,
		Location: loc,
		Clock:    clock,
	}

	a.Tasks = services.NewTaskService(taskRepo, catalog, clock, cfg.WeekStart)
	a.Habits = services.NewHabitService(habitRepo, catalog, clock)
	a.Scores = services.NewScoreService(taskRepo, habitRepo, catalog, clock, cfg.ScoringMode)
	a.Snapshots = services.NewSnapshotService(snapshotRepo, a.Scores, clock)
	a.Wheel = services.NewWheelService(wheelRepo, domain.WheelCatalog())

	if cfg.SnapshotInterval > 0 {
		a.SnapshotWorker = workers.NewSnapshotWorker(a.Snapshots, cfg.SnapshotInterval)
	}

	counter, err := a.counter()
	if err != nil {
		return nil, err
	}

	categorySet := cfg.CategorySet
	if cfg.CategoryFile != "" {
		categorySet = cfg.CategoryFile
	}

	a.Router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		CategoryHandler: adapterHTTP.NewCategoryHandler(catalog),
		TaskHandler:     adapterHTTP.NewTaskHandler(a.Tasks, loc),
		HabitHandler:    adapterHTTP.NewHabitHandler(a.Habits, loc),
		ScoreHandler:    adapterHTTP.NewScoreHandler(a.Scores, loc),
		SnapshotHandler: adapterHTTP.NewSnapshotHandler(a.Snapshots),
		WheelHandler:    adapterHTTP.NewWheelHandler(a.Wheel),
		Counter:         counter,
		RateLimit:       cfg.RateLimit,
		RateWindow:      cfg.RateWindow,
		StartTime:       time.Now(),
		CategorySet:     categorySet,
	})

	return a, nil
}

func (a *App) counter() (cache.Counter, error) {
	if a.Config.RateLimit == 0 {
		return nil, nil
	}
	if a.Config.RedisAddr == "" {
		return cache.NewMemoryCounter(), nil
	}

	log.Println("Connecting to redis...")
	rdb, err := cache.NewRedisClient(a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB)
	if err != nil {
		return nil, err
	}
	a.redis = rdb
	log.Println("Redis connected successfully.")

	return cache.NewRedisCounter(rdb, "kanso_rate"), nil
}

func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

// Serve runs the HTTP server until ctx is cancelled, then drains open
// requests for at most the configured shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Background work stops with the server, also when ListenAndServe fails.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.SnapshotWorker != nil {
		a.SnapshotWorker.Start(ctx)
		a.SnapshotWorker.Enqueue("")
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Kanso Balance running on http://localhost:%s", a.Config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("Server stopped gracefully.")
	return nil
}
