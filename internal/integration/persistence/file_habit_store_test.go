package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

func TestFileHabitStore_Load(t *testing.T) {
	t.Run("missing file yields empty collection", func(t *testing.T) {
		store := NewFileHabitStore(filepath.Join(t.TempDir(), "habits.json"))

		if err := store.Load(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		habits, _ := store.FindAll(context.Background())
		if len(habits) != 0 {
			t.Errorf("expected empty collection, got %d habits", len(habits))
		}
	})

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", "{not json"},
		{"invalid record", `{"habits":[{"name":"Read","periodicity":"hourly","start_date":"2024-01-01","completion_dates":[]}]}`},
		{"duplicate names", `{"habits":[
			{"name":"Read","periodicity":"daily","start_date":"2024-01-01","completion_dates":[]},
			{"name":"Read","periodicity":"weekly","start_date":"2024-01-01","completion_dates":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name+" yields empty collection", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "habits.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}
			store := NewFileHabitStore(path)

			if err := store.Load(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			habits, _ := store.FindAll(context.Background())
			if len(habits) != 0 {
				t.Errorf("expected empty collection, got %d habits", len(habits))
			}
		})

		t.Run(tt.name+" is kept aside and survives a flush", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "habits.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}
			store := NewFileHabitStore(path)
			if err := store.Load(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("expected original path to be gone, got %v", err)
			}

			if err := store.Flush(); err != nil {
				t.Fatalf("failed to flush: %v", err)
			}

			backup, err := os.ReadFile(path + ".corrupt")
			if err != nil {
				t.Fatalf("expected backup file: %v", err)
			}
			if string(backup) != tt.content {
				t.Errorf("expected backup to hold the original bytes, got %q", backup)
			}
		})
	}
}

func TestFileHabitStore_FlushAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "habits.json")

	store := NewFileHabitStore(path)
	exercise := newHabit(t, "Exercise", entity.PeriodicityDaily, day(2024, 1, 3), day(2024, 1, 2))
	report := newHabit(t, "Report", entity.PeriodicityMonthly)
	for _, h := range []*entity.Habit{exercise, report} {
		if err := store.Create(ctx, h); err != nil {
			t.Fatalf("failed to create habit: %v", err)
		}
	}

	if err := store.Flush(); err != nil {
		t.Fatalf("failed to flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !strings.Contains(string(data), "\n    \"habits\": [") {
		t.Errorf("expected 4-space indented habits key, got:\n%s", data)
	}
	var raw map[string][]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("expected valid json: %v", err)
	}
	if len(raw["habits"]) != 2 {
		t.Fatalf("expected 2 records, got %d", len(raw["habits"]))
	}

	reloaded := NewFileHabitStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	habits, _ := reloaded.FindAll(ctx)
	if len(habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(habits))
	}
	if habits[0].Name() != "Exercise" || habits[1].Name() != "Report" {
		t.Errorf("expected insertion order to survive, got %s, %s", habits[0].Name(), habits[1].Name())
	}
	if habits[0].ID() != exercise.ID() {
		t.Errorf("expected id %s, got %s", exercise.ID(), habits[0].ID())
	}
	assertSameCompletions(t, exercise, habits[0])
}

func TestFileHabitStore_Collection(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name is rejected", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_ = store.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily))

		err := store.Create(ctx, newHabit(t, "Read", entity.PeriodicityWeekly))
		if !errors.Is(err, domainerror.ErrHabitAlreadyExists) {
			t.Errorf("expected ErrHabitAlreadyExists, got %v", err)
		}
	})

	t.Run("returned habits are copies", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_ = store.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily))

		h, _ := store.FindByName(ctx, "Read")
		_ = h.MarkCompleted(day(2024, 1, 2))

		again, _ := store.FindByName(ctx, "Read")
		if len(again.CompletionDates()) != 0 {
			t.Error("expected stored habit to be unaffected by caller mutation")
		}
	})

	t.Run("mutate keeps position and applies rename", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_ = store.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily))
		_ = store.Create(ctx, newHabit(t, "Jog", entity.PeriodicityWeekly))

		name := "Study"
		_, err := store.Mutate(ctx, "Read", func(h *entity.Habit) error {
			return h.Edit(entity.HabitUpdate{Name: &name})
		})
		if err != nil {
			t.Fatalf("failed to mutate: %v", err)
		}

		habits, _ := store.FindAll(ctx)
		if habits[0].Name() != "Study" {
			t.Errorf("expected renamed habit first, got %s", habits[0].Name())
		}
		if exists, _ := store.ExistsByName(ctx, "Read"); exists {
			t.Error("expected old name to be gone")
		}
	})

	t.Run("mutate rejects rename onto another habit", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_ = store.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily))
		_ = store.Create(ctx, newHabit(t, "Jog", entity.PeriodicityWeekly))

		name := "Jog"
		_, err := store.Mutate(ctx, "Read", func(h *entity.Habit) error {
			return h.Edit(entity.HabitUpdate{Name: &name})
		})
		if !errors.Is(err, domainerror.ErrHabitAlreadyExists) {
			t.Fatalf("expected ErrHabitAlreadyExists, got %v", err)
		}
		if exists, _ := store.ExistsByName(ctx, "Read"); !exists {
			t.Error("expected habit to keep its name")
		}
	})

	t.Run("failed mutation stores nothing", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_ = store.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily))

		_, err := store.Mutate(ctx, "Read", func(h *entity.Habit) error {
			_ = h.MarkCompleted(day(2024, 1, 2))
			return h.MarkCompleted(day(2023, 1, 1))
		})
		if !errors.Is(err, domainerror.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		stored, _ := store.FindByName(ctx, "Read")
		if len(stored.CompletionDates()) != 0 {
			t.Errorf("expected no stored completions, got %d", len(stored.CompletionDates()))
		}
	})

	t.Run("mutate of unknown name returns not found", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_, err := store.Mutate(ctx, "Ghost", func(*entity.Habit) error { return nil })
		if !errors.Is(err, domainerror.ErrHabitNotFound) {
			t.Errorf("expected ErrHabitNotFound, got %v", err)
		}
	})

	t.Run("concurrent mutations are all kept", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_ = store.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily))

		const n = 100
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := store.Mutate(ctx, "Read", func(h *entity.Habit) error {
					return h.MarkCompleted(day(2024, 1, 1).AddDate(0, 0, i))
				})
				if err != nil {
					t.Errorf("mutation %d failed: %v", i, err)
				}
			}(i)
		}
		wg.Wait()

		stored, _ := store.FindByName(ctx, "Read")
		if got := len(stored.CompletionDates()); got != n {
			t.Errorf("expected %d completions, got %d", n, got)
		}
	})

	t.Run("filters by periodicity", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		_ = store.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily))
		_ = store.Create(ctx, newHabit(t, "Jog", entity.PeriodicityWeekly))

		weekly, _ := store.FindByPeriodicity(ctx, entity.PeriodicityWeekly)
		if len(weekly) != 1 || weekly[0].Name() != "Jog" {
			t.Errorf("expected only Jog, got %v", weekly)
		}
		monthly, _ := store.FindByPeriodicity(ctx, entity.PeriodicityMonthly)
		if monthly == nil || len(monthly) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", monthly)
		}
	})

	t.Run("delete of unknown name returns not found", func(t *testing.T) {
		store := NewFileHabitStore("unused.json")
		if err := store.DeleteByName(ctx, "Ghost"); !errors.Is(err, domainerror.ErrHabitNotFound) {
			t.Errorf("expected ErrHabitNotFound, got %v", err)
		}
	})
}
