// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// HabitRepository defines the interface for the habit collection.
// Implementations exclusively own their habits: returned habits are copies and
// changes only become visible to other callers through Mutate.
type HabitRepository interface {
	// Create adds a new habit to the collection.
	Create(ctx context.Context, habit *entity.Habit) error

	// FindByName retrieves a habit by its exact name.
	FindByName(ctx context.Context, name string) (*entity.Habit, error)

	// FindAll retrieves every habit in insertion order.
	FindAll(ctx context.Context) ([]*entity.Habit, error)

	// FindByPeriodicity retrieves every habit with the given periodicity.
	FindByPeriodicity(ctx context.Context, periodicity entity.Periodicity) ([]*entity.Habit, error)

	// ExistsByName checks whether a habit with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Mutate applies fn to the habit with the given name and stores the result.
	// No other change to the same habit interleaves between the read and the
	// write. Nothing is stored when fn fails. A rename onto another stored
	// habit returns ErrHabitAlreadyExists. The stored state is returned.
	Mutate(ctx context.Context, name string, fn func(habit *entity.Habit) error) (*entity.Habit, error)

	// DeleteByName removes the habit with the given name.
	DeleteByName(ctx context.Context, name string) error
}
