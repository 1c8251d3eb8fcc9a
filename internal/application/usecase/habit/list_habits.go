package habit

import (
	"context"
	"fmt"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// ListHabitsInput represents the input for listing habits.
type ListHabitsInput struct {
	Periodicity *string // Optional filter
}

// ListHabitsOutput represents the output of listing habits.
type ListHabitsOutput struct {
	Habits []*entity.Habit
}

// ListHabitsUseCase handles listing habits, optionally filtered by periodicity.
type ListHabitsUseCase struct {
	habitRepo adapter.HabitRepository
}

// NewListHabitsUseCase creates a new ListHabitsUseCase instance.
func NewListHabitsUseCase(habitRepo adapter.HabitRepository) *ListHabitsUseCase {
	return &ListHabitsUseCase{
		habitRepo: habitRepo,
	}
}

// Execute performs the habit listing.
func (uc *ListHabitsUseCase) Execute(ctx context.Context, input ListHabitsInput) (*ListHabitsOutput, error) {
	var (
		habits []*entity.Habit
		err    error
	)

	if input.Periodicity != nil {
		periodicity, perr := entity.ParsePeriodicity(*input.Periodicity)
		if perr != nil {
			return nil, perr
		}
		habits, err = uc.habitRepo.FindByPeriodicity(ctx, periodicity)
	} else {
		habits, err = uc.habitRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	return &ListHabitsOutput{
		Habits: habits,
	}, nil
}
