package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
	"github.com/habit-tracker/tracker/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestHabitRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewHabitRepository(newTestDB(t))

	// Recorded out of order on purpose
	original := newHabit(t, "Jog", entity.PeriodicityWeekly, day(2024, 1, 13), day(2024, 1, 1), day(2024, 1, 7))
	if err := repo.Create(ctx, original); err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	found, err := repo.FindByName(ctx, "Jog")
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if found.ID() != original.ID() {
		t.Errorf("expected id %s, got %s", original.ID(), found.ID())
	}
	if found.String() != original.String() {
		t.Errorf("expected %s, got %s", original, found)
	}
	assertSameCompletions(t, original, found)

	streak, err := found.LongestStreak()
	if err != nil || streak != 3 {
		t.Errorf("expected streak 3, got %d (%v)", streak, err)
	}
}

func TestHabitRepository_Mutate(t *testing.T) {
	ctx := context.Background()
	repo := NewHabitRepository(newTestDB(t))

	if err := repo.Create(ctx, newHabit(t, "Read", entity.PeriodicityDaily, day(2024, 1, 2), day(2024, 1, 3))); err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if err := repo.Create(ctx, newHabit(t, "Jog", entity.PeriodicityWeekly)); err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	name := "Study"
	start := day(2024, 1, 3)
	updated, err := repo.Mutate(ctx, "Read", func(h *entity.Habit) error {
		if err := h.Edit(entity.HabitUpdate{Name: &name, StartDate: &start}); err != nil {
			return err
		}
		return h.MarkCompleted(day(2024, 1, 4))
	})
	if err != nil {
		t.Fatalf("failed to mutate: %v", err)
	}

	if _, err := repo.FindByName(ctx, "Read"); !errors.Is(err, domainerror.ErrHabitNotFound) {
		t.Errorf("expected old name to be gone, got %v", err)
	}
	found, err := repo.FindByName(ctx, "Study")
	if err != nil {
		t.Fatalf("failed to find renamed habit: %v", err)
	}
	assertSameCompletions(t, updated, found)
	if len(found.CompletionDates()) != 2 {
		t.Errorf("expected 2 completions after pruning, got %d", len(found.CompletionDates()))
	}

	t.Run("unknown habit returns not found", func(t *testing.T) {
		_, err := repo.Mutate(ctx, "Ghost", func(*entity.Habit) error { return nil })
		if !errors.Is(err, domainerror.ErrHabitNotFound) {
			t.Errorf("expected ErrHabitNotFound, got %v", err)
		}
	})

	t.Run("rename onto another habit is rejected", func(t *testing.T) {
		taken := "Jog"
		_, err := repo.Mutate(ctx, "Study", func(h *entity.Habit) error {
			return h.Edit(entity.HabitUpdate{Name: &taken})
		})
		if !errors.Is(err, domainerror.ErrHabitAlreadyExists) {
			t.Errorf("expected ErrHabitAlreadyExists, got %v", err)
		}
	})

	t.Run("failed mutation rolls back", func(t *testing.T) {
		_, err := repo.Mutate(ctx, "Study", func(h *entity.Habit) error {
			_ = h.MarkCompleted(day(2024, 1, 5))
			return h.MarkCompleted(day(2023, 1, 1))
		})
		if !errors.Is(err, domainerror.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		found, _ := repo.FindByName(ctx, "Study")
		if len(found.CompletionDates()) != 2 {
			t.Errorf("expected 2 completions, got %d", len(found.CompletionDates()))
		}
	})

	t.Run("concurrent mutations are all kept", func(t *testing.T) {
		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Mutate(ctx, "Study", func(h *entity.Habit) error {
					return h.MarkCompleted(day(2024, 2, 1).AddDate(0, 0, i))
				})
				if err != nil {
					t.Errorf("mutation %d failed: %v", i, err)
				}
			}(i)
		}
		wg.Wait()

		found, _ := repo.FindByName(ctx, "Study")
		if got := len(found.CompletionDates()); got != 2+n {
			t.Errorf("expected %d completions, got %d", 2+n, got)
		}
	})
}

func TestHabitRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewHabitRepository(newTestDB(t))

	for _, h := range []*entity.Habit{
		newHabit(t, "Read", entity.PeriodicityDaily),
		newHabit(t, "Jog", entity.PeriodicityWeekly),
		newHabit(t, "Report", entity.PeriodicityMonthly),
	} {
		if err := repo.Create(ctx, h); err != nil {
			t.Fatalf("failed to create %s: %v", h.Name(), err)
		}
	}

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := repo.Create(ctx, newHabit(t, "Read", entity.PeriodicityWeekly))
		if !errors.Is(err, domainerror.ErrHabitAlreadyExists) {
			t.Errorf("expected ErrHabitAlreadyExists, got %v", err)
		}
	})

	t.Run("lists all habits", func(t *testing.T) {
		habits, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(habits) != 3 {
			t.Errorf("expected 3 habits, got %d", len(habits))
		}
	})

	t.Run("filters by periodicity", func(t *testing.T) {
		habits, err := repo.FindByPeriodicity(ctx, entity.PeriodicityWeekly)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(habits) != 1 || habits[0].Name() != "Jog" {
			t.Errorf("expected only Jog, got %v", habits)
		}
	})

	t.Run("delete removes habit and history", func(t *testing.T) {
		if err := repo.DeleteByName(ctx, "Jog"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if exists, _ := repo.ExistsByName(ctx, "Jog"); exists {
			t.Error("expected Jog to be deleted")
		}
		if err := repo.DeleteByName(ctx, "Jog"); !errors.Is(err, domainerror.ErrHabitNotFound) {
			t.Errorf("expected ErrHabitNotFound, got %v", err)
		}
	})
}
