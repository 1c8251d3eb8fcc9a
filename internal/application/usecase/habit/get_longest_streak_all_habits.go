package habit

import (
	"context"
	"fmt"

	"github.com/habit-tracker/tracker/internal/application/adapter"
)

// GetLongestStreakAllHabitsOutput holds the best streak across the collection.
// Name and Duration are empty when the collection has no habits.
type GetLongestStreakAllHabitsOutput struct {
	Name     string
	Streak   int
	Duration string
}

// GetLongestStreakAllHabitsUseCase finds the longest streak of any habit.
type GetLongestStreakAllHabitsUseCase struct {
	habitRepo   adapter.HabitRepository
	streakCache adapter.StreakCache
}

// NewGetLongestStreakAllHabitsUseCase creates a new GetLongestStreakAllHabitsUseCase instance.
func NewGetLongestStreakAllHabitsUseCase(habitRepo adapter.HabitRepository, streakCache adapter.StreakCache) *GetLongestStreakAllHabitsUseCase {
	return &GetLongestStreakAllHabitsUseCase{
		habitRepo:   habitRepo,
		streakCache: streakCache,
	}
}

// Execute scans every habit. Ties keep the habit that was added first.
func (uc *GetLongestStreakAllHabitsUseCase) Execute(ctx context.Context) (*GetLongestStreakAllHabitsOutput, error) {
	habits, err := uc.habitRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	output := &GetLongestStreakAllHabitsOutput{}
	for _, habit := range habits {
		streak, err := longestStreak(ctx, uc.streakCache, habit)
		if err != nil {
			return nil, err
		}
		if output.Name == "" || streak > output.Streak {
			output.Name = habit.Name()
			output.Streak = streak
			output.Duration = habit.StreakDurationString(streak)
		}
	}

	return output, nil
}
