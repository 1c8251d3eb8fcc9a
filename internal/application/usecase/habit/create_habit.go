package habit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// CreateHabitInput represents the input for habit creation.
type CreateHabitInput struct {
	Name        string
	Periodicity string
	StartDate   time.Time
}

// CreateHabitOutput represents the output of habit creation.
type CreateHabitOutput struct {
	Habit *entity.Habit
}

// CreateHabitUseCase handles adding a habit to the collection.
type CreateHabitUseCase struct {
	habitRepo adapter.HabitRepository
}

// NewCreateHabitUseCase creates a new CreateHabitUseCase instance.
func NewCreateHabitUseCase(habitRepo adapter.HabitRepository) *CreateHabitUseCase {
	return &CreateHabitUseCase{
		habitRepo: habitRepo,
	}
}

// Execute performs the habit creation.
func (uc *CreateHabitUseCase) Execute(ctx context.Context, input CreateHabitInput) (*CreateHabitOutput, error) {
	periodicity, err := entity.ParsePeriodicity(input.Periodicity)
	if err != nil {
		return nil, err
	}

	habit, err := entity.NewHabit(input.Name, periodicity, input.StartDate)
	if err != nil {
		return nil, err
	}

	exists, err := uc.habitRepo.ExistsByName(ctx, habit.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to check habit existence: %w", err)
	}
	if exists {
		return nil, habitAlreadyExists(habit.Name())
	}

	if err := uc.habitRepo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	slog.Info("Habit created",
		"habit", habit.Name(),
		"periodicity", habit.Periodicity(),
	)

	return &CreateHabitOutput{
		Habit: habit,
	}, nil
}
