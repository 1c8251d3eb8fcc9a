package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// StreakCache caches computed longest streaks per habit. Entries are bound to
// the habit state they were computed from, so a value computed before a
// change is never returned for the changed habit.
type StreakCache interface {
	// Get returns the cached streak for the habit's current state and whether it was found.
	Get(ctx context.Context, habit *entity.Habit) (int, bool, error)

	// Set stores the streak computed from the habit's current state.
	Set(ctx context.Context, habit *entity.Habit, streak int) error

	// Invalidate drops every cached streak of a habit.
	Invalidate(ctx context.Context, habitID uuid.UUID) error
}
