// Package habit contains habit collection use cases.
package habit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

// findHabit looks a habit up by name and maps a missing habit to a coded error.
func findHabit(ctx context.Context, repo adapter.HabitRepository, name string) (*entity.Habit, error) {
	habit, err := repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domainerror.ErrHabitNotFound) {
			return nil, habitNotFound(name)
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	return habit, nil
}

// mutationError maps a failed Mutate. Coded errors raised by the mutation
// itself pass through unchanged.
func mutationError(name, action string, err error) error {
	var habitErr *domainerror.HabitError
	switch {
	case errors.As(err, &habitErr):
		return err
	case errors.Is(err, domainerror.ErrHabitNotFound):
		return habitNotFound(name)
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func habitNotFound(name string) error {
	return domainerror.NewHabitError(
		domainerror.ErrCodeHabitNotFound,
		fmt.Sprintf("habit with name '%s' not found", name),
		domainerror.ErrHabitNotFound,
	)
}

func habitAlreadyExists(name string) error {
	return domainerror.NewHabitError(
		domainerror.ErrCodeHabitAlreadyExists,
		fmt.Sprintf("habit with name '%s' already exists", name),
		domainerror.ErrHabitAlreadyExists,
	)
}

// invalidateStreak drops a cached streak. Cache failures are logged, never
// returned, since the cache is not the source of truth.
func invalidateStreak(ctx context.Context, cache adapter.StreakCache, habit *entity.Habit) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, habit.ID()); err != nil {
		slog.Warn("Failed to invalidate cached streak",
			"habit", habit.Name(),
			"error", err,
		)
	}
}
