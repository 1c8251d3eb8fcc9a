// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/habit-tracker/tracker/internal/integration/entrypoint/controller"
	"github.com/habit-tracker/tracker/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	habitController       *controller.HabitController
	completionRateLimiter *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	habitController *controller.HabitController,
	completionRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		habitController:       habitController,
		completionRateLimiter: completionRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		habits := v1.Group("/habits")
		{
			habits.GET("", r.habitController.List)
			habits.POST("", r.habitController.Create)
			habits.GET("/streaks/longest", r.habitController.LongestStreak)
			habits.GET("/:name/streak", r.habitController.Streak)
			habits.PATCH("/:name", r.habitController.Update)
			habits.DELETE("/:name", r.habitController.Delete)

			if r.completionRateLimiter != nil {
				habits.POST("/:name/completions", r.completionRateLimiter.Middleware(), r.habitController.MarkCompleted)
			} else {
				habits.POST("/:name/completions", r.habitController.MarkCompleted)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
