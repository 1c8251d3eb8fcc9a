package habit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/habit-tracker/tracker/internal/application/adapter"
)

// DeleteHabitInput represents the input for habit deletion.
type DeleteHabitInput struct {
	Name string
}

// DeleteHabitOutput represents the output of habit deletion.
type DeleteHabitOutput struct{}

// DeleteHabitUseCase handles removing a habit from the collection.
type DeleteHabitUseCase struct {
	habitRepo   adapter.HabitRepository
	streakCache adapter.StreakCache
}

// NewDeleteHabitUseCase creates a new DeleteHabitUseCase instance.
func NewDeleteHabitUseCase(habitRepo adapter.HabitRepository, streakCache adapter.StreakCache) *DeleteHabitUseCase {
	return &DeleteHabitUseCase{
		habitRepo:   habitRepo,
		streakCache: streakCache,
	}
}

// Execute performs the habit deletion.
func (uc *DeleteHabitUseCase) Execute(ctx context.Context, input DeleteHabitInput) (*DeleteHabitOutput, error) {
	habit, err := findHabit(ctx, uc.habitRepo, input.Name)
	if err != nil {
		return nil, err
	}

	if err := uc.habitRepo.DeleteByName(ctx, habit.Name()); err != nil {
		return nil, fmt.Errorf("failed to delete habit: %w", err)
	}
	invalidateStreak(ctx, uc.streakCache, habit)

	slog.Info("Habit deleted", "habit", habit.Name())

	return &DeleteHabitOutput{}, nil
}
