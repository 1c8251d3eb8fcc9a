package habit

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

var errMockStorage = errors.New("mock storage error")

// mockHabitRepository is an in-memory HabitRepository for use case tests.
type mockHabitRepository struct {
	habits      []*entity.Habit
	failOnWrite bool
	writes      int
}

func newMockHabitRepository(habits ...*entity.Habit) *mockHabitRepository {
	return &mockHabitRepository{habits: habits}
}

func (m *mockHabitRepository) Create(_ context.Context, habit *entity.Habit) error {
	if m.failOnWrite {
		return errMockStorage
	}
	m.habits = append(m.habits, habit.Clone())
	return nil
}

func (m *mockHabitRepository) FindByName(_ context.Context, name string) (*entity.Habit, error) {
	for _, h := range m.habits {
		if h.Name() == name {
			return h.Clone(), nil
		}
	}
	return nil, domainerror.ErrHabitNotFound
}

func (m *mockHabitRepository) FindAll(_ context.Context) ([]*entity.Habit, error) {
	out := make([]*entity.Habit, 0, len(m.habits))
	for _, h := range m.habits {
		out = append(out, h.Clone())
	}
	return out, nil
}

func (m *mockHabitRepository) FindByPeriodicity(_ context.Context, p entity.Periodicity) ([]*entity.Habit, error) {
	var out []*entity.Habit
	for _, h := range m.habits {
		if h.Periodicity() == p {
			out = append(out, h.Clone())
		}
	}
	return out, nil
}

func (m *mockHabitRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, h := range m.habits {
		if h.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockHabitRepository) Mutate(_ context.Context, name string, fn func(*entity.Habit) error) (*entity.Habit, error) {
	for i, h := range m.habits {
		if h.Name() != name {
			continue
		}
		habit := h.Clone()
		if err := fn(habit); err != nil {
			return nil, err
		}
		for j, other := range m.habits {
			if j != i && other.Name() == habit.Name() {
				return nil, domainerror.ErrHabitAlreadyExists
			}
		}
		if m.failOnWrite {
			return nil, errMockStorage
		}
		m.writes++
		m.habits[i] = habit
		return habit.Clone(), nil
	}
	return nil, domainerror.ErrHabitNotFound
}

func (m *mockHabitRepository) DeleteByName(_ context.Context, name string) error {
	for i, h := range m.habits {
		if h.Name() == name {
			m.habits = append(m.habits[:i], m.habits[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrHabitNotFound
}

// mockStreakCache records cache traffic.
type mockStreakCache struct {
	values      map[uuid.UUID]int
	gets        int
	sets        int
	invalidated []uuid.UUID
}

func newMockStreakCache() *mockStreakCache {
	return &mockStreakCache{values: make(map[uuid.UUID]int)}
}

func (m *mockStreakCache) Get(_ context.Context, habit *entity.Habit) (int, bool, error) {
	m.gets++
	v, ok := m.values[habit.ID()]
	return v, ok, nil
}

func (m *mockStreakCache) Set(_ context.Context, habit *entity.Habit, streak int) error {
	m.sets++
	m.values[habit.ID()] = streak
	return nil
}

func (m *mockStreakCache) Invalidate(_ context.Context, id uuid.UUID) error {
	m.invalidated = append(m.invalidated, id)
	delete(m.values, id)
	return nil
}
