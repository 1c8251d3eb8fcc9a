package habit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

// EditHabitInput represents the input for a partial habit update.
type EditHabitInput struct {
	Name        string     // Habit to edit
	NewName     *string    // Optional
	Periodicity *string    // Optional
	StartDate   *time.Time // Optional; prunes earlier completions
}

// EditHabitOutput represents the output of a habit update.
type EditHabitOutput struct {
	Habit             *entity.Habit
	PrunedCompletions int // Completions dropped by a start date change
}

// EditHabitUseCase handles habit updates.
type EditHabitUseCase struct {
	habitRepo   adapter.HabitRepository
	streakCache adapter.StreakCache
}

// NewEditHabitUseCase creates a new EditHabitUseCase instance.
func NewEditHabitUseCase(habitRepo adapter.HabitRepository, streakCache adapter.StreakCache) *EditHabitUseCase {
	return &EditHabitUseCase{
		habitRepo:   habitRepo,
		streakCache: streakCache,
	}
}

// Execute performs the habit update.
func (uc *EditHabitUseCase) Execute(ctx context.Context, input EditHabitInput) (*EditHabitOutput, error) {
	pruned := 0
	habit, err := uc.habitRepo.Mutate(ctx, input.Name, func(h *entity.Habit) error {
		update := entity.HabitUpdate{
			Name:      input.NewName,
			StartDate: input.StartDate,
		}
		if input.Periodicity != nil {
			periodicity, err := entity.ParsePeriodicity(*input.Periodicity)
			if err != nil {
				return err
			}
			update.Periodicity = &periodicity
		}

		before := len(h.CompletionDates())
		if err := h.Edit(update); err != nil {
			return err
		}
		pruned = before - len(h.CompletionDates())
		return nil
	})
	if err != nil {
		if input.NewName != nil && errors.Is(err, domainerror.ErrHabitAlreadyExists) {
			return nil, habitAlreadyExists(*input.NewName)
		}
		return nil, mutationError(input.Name, "update habit", err)
	}
	invalidateStreak(ctx, uc.streakCache, habit)

	if pruned > 0 {
		slog.Info("Completions removed by start date change",
			"habit", habit.Name(),
			"removed", pruned,
		)
	}

	return &EditHabitOutput{
		Habit:             habit,
		PrunedCompletions: pruned,
	}, nil
}
