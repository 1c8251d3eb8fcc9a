package persistence

import (
	"testing"
	"time"

	"github.com/habit-tracker/tracker/internal/domain/entity"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newHabit(t *testing.T, name string, p entity.Periodicity, completions ...time.Time) *entity.Habit {
	t.Helper()
	h, err := entity.NewHabit(name, p, day(2024, 1, 1))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	for _, c := range completions {
		if err := h.MarkCompleted(c); err != nil {
			t.Fatalf("failed to mark completed: %v", err)
		}
	}
	return h
}

func assertSameCompletions(t *testing.T, want, got *entity.Habit) {
	t.Helper()
	w, g := want.CompletionDates(), got.CompletionDates()
	if len(w) != len(g) {
		t.Fatalf("expected %d completions, got %d", len(w), len(g))
	}
	for i := range w {
		if !w[i].Equal(g[i]) {
			t.Errorf("completion %d: expected %s, got %s", i, entity.FormatDate(w[i]), entity.FormatDate(g[i]))
		}
	}
}
