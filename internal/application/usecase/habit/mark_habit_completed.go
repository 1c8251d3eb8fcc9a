package habit

import (
	"context"
	"time"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// MarkHabitCompletedInput represents the input for recording a completion.
type MarkHabitCompletedInput struct {
	Name string
	Date time.Time
}

// MarkHabitCompletedOutput represents the output of recording a completion.
type MarkHabitCompletedOutput struct {
	Habit *entity.Habit
}

// MarkHabitCompletedUseCase handles recording a completion for a habit.
type MarkHabitCompletedUseCase struct {
	habitRepo   adapter.HabitRepository
	streakCache adapter.StreakCache
}

// NewMarkHabitCompletedUseCase creates a new MarkHabitCompletedUseCase instance.
func NewMarkHabitCompletedUseCase(habitRepo adapter.HabitRepository, streakCache adapter.StreakCache) *MarkHabitCompletedUseCase {
	return &MarkHabitCompletedUseCase{
		habitRepo:   habitRepo,
		streakCache: streakCache,
	}
}

// Execute records the completion.
func (uc *MarkHabitCompletedUseCase) Execute(ctx context.Context, input MarkHabitCompletedInput) (*MarkHabitCompletedOutput, error) {
	habit, err := uc.habitRepo.Mutate(ctx, input.Name, func(h *entity.Habit) error {
		return h.MarkCompleted(input.Date)
	})
	if err != nil {
		return nil, mutationError(input.Name, "save completion", err)
	}
	invalidateStreak(ctx, uc.streakCache, habit)

	return &MarkHabitCompletedOutput{
		Habit: habit,
	}, nil
}
