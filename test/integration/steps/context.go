// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/habit-tracker/tracker/internal/application/usecase/habit"
	"github.com/habit-tracker/tracker/internal/infra/server/router"
	"github.com/habit-tracker/tracker/internal/integration/cache"
	"github.com/habit-tracker/tracker/internal/integration/entrypoint/controller"
	"github.com/habit-tracker/tracker/internal/integration/entrypoint/middleware"
	"github.com/habit-tracker/tracker/internal/integration/persistence"
	"github.com/habit-tracker/tracker/internal/integration/persistence/model"
	"github.com/habit-tracker/tracker/test/integration/mock"
)

const (
	completionRateMax = 5
	streakCacheTTL    = time.Minute
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	server       *httptest.Server
	db           *mock.Db
	statusCode   int
	responseBody []byte

	requestHeaders map[string]string
}

type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

func testDB() *mock.Db {
	return mock.NewDb(
		[]string{"habits", "habit_completions"},
		map[string]any{
			"habits":            &model.HabitModel{},
			"habit_completions": &model.HabitCompletionModel{},
		},
	)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// ENV=test disables the completion rate limiter
		_ = os.Unsetenv("ENV")
		testDB()
		mock.NewRedis()
	})
}

// InitializeScenario wires a fresh server over the shared database and cache.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		db := testDB()
		if err := db.ClearDB(); err != nil {
			return ctx, err
		}
		rdb := mock.NewRedis()
		if err := mock.ClearRedis(rdb); err != nil {
			return ctx, err
		}

		useCases := habit.NewUseCases(
			persistence.NewHabitRepository(db.DbConn),
			cache.NewRedisStreakCache(rdb, streakCacheTTL),
		)
		healthController := controller.NewHealthController(
			func() bool { return db.DbConn.Exec("SELECT 1").Error == nil },
			func() bool { return rdb.Ping(context.Background()).Err() == nil },
		)
		habitController := controller.NewHabitController(
			useCases.Create,
			useCases.MarkCompleted,
			useCases.List,
			useCases.Streak,
			useCases.LongestStreak,
			useCases.Edit,
			useCases.Delete,
		)
		limiter := middleware.NewRateLimiterWithConfig(completionRateMax, time.Minute)

		engine := router.NewRouter(healthController, habitController, limiter).Setup("test")

		tc := &TestContext{
			server:         httptest.NewServer(engine),
			db:             db,
			requestHeaders: make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerStorageSteps(ctx)
}

func mustTestContext(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}
	return tc, nil
}
