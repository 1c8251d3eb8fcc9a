package habit

import (
	"context"
	"log/slog"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// GetHabitStreakInput represents the input for a single habit streak query.
type GetHabitStreakInput struct {
	Name string
}

// GetHabitStreakOutput represents the longest streak of one habit.
type GetHabitStreakOutput struct {
	Habit    *entity.Habit
	Streak   int
	Duration string
}

// GetHabitStreakUseCase computes the longest streak of a habit, using the
// streak cache when one is configured.
type GetHabitStreakUseCase struct {
	habitRepo   adapter.HabitRepository
	streakCache adapter.StreakCache
}

// NewGetHabitStreakUseCase creates a new GetHabitStreakUseCase instance.
func NewGetHabitStreakUseCase(habitRepo adapter.HabitRepository, streakCache adapter.StreakCache) *GetHabitStreakUseCase {
	return &GetHabitStreakUseCase{
		habitRepo:   habitRepo,
		streakCache: streakCache,
	}
}

// Execute performs the streak query.
func (uc *GetHabitStreakUseCase) Execute(ctx context.Context, input GetHabitStreakInput) (*GetHabitStreakOutput, error) {
	habit, err := findHabit(ctx, uc.habitRepo, input.Name)
	if err != nil {
		return nil, err
	}

	streak, err := longestStreak(ctx, uc.streakCache, habit)
	if err != nil {
		return nil, err
	}

	return &GetHabitStreakOutput{
		Habit:    habit,
		Streak:   streak,
		Duration: habit.StreakDurationString(streak),
	}, nil
}

// longestStreak reads the streak through the cache, computing and storing it on a miss.
func longestStreak(ctx context.Context, cache adapter.StreakCache, habit *entity.Habit) (int, error) {
	if cache != nil {
		streak, found, err := cache.Get(ctx, habit)
		if err != nil {
			slog.Warn("Failed to read cached streak", "habit", habit.Name(), "error", err)
		} else if found {
			return streak, nil
		}
	}

	streak, err := habit.LongestStreak()
	if err != nil {
		return 0, err
	}

	if cache != nil {
		if err := cache.Set(ctx, habit, streak); err != nil {
			slog.Warn("Failed to cache streak", "habit", habit.Name(), "error", err)
		}
	}
	return streak, nil
}
