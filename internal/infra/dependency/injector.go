// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/habit-tracker/tracker/config"
	"github.com/habit-tracker/tracker/internal/application/usecase/habit"
	"github.com/habit-tracker/tracker/internal/infra/server/router"
	"github.com/habit-tracker/tracker/internal/integration/entrypoint/controller"
	"github.com/habit-tracker/tracker/internal/integration/entrypoint/middleware"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Storage  *Storage
	UseCases *habit.UseCases
	Router   *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, storage *Storage) *Injector {
	useCases := habit.NewUseCases(storage.Repository, storage.StreakCache)

	healthController := controller.NewHealthController(storage.HealthCheck, storage.CacheHealthCheck())
	habitController := controller.NewHabitController(
		useCases.Create,
		useCases.MarkCompleted,
		useCases.List,
		useCases.Streak,
		useCases.LongestStreak,
		useCases.Edit,
		useCases.Delete,
	)

	completionRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.Server.CompletionRateMax,
		cfg.Server.CompletionRateWindow,
	)

	r := router.NewRouter(healthController, habitController, completionRateLimiter)

	return &Injector{
		Config:   cfg,
		Storage:  storage,
		UseCases: useCases,
		Router:   r,
	}
}
