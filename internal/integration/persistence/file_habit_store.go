package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

const (
	fileIndent    = "    "
	corruptSuffix = ".corrupt"
)

// habitFile is the on-disk layout of the JSON store.
type habitFile struct {
	Habits []entity.HabitRecord `json:"habits"`
}

// FileHabitStore keeps the habit collection in memory and persists it to a
// single JSON file. The file is read by Load and written by Flush.
type FileHabitStore struct {
	mu     sync.RWMutex
	path   string
	habits []*entity.Habit
}

// NewFileHabitStore creates an empty store bound to the given file path.
func NewFileHabitStore(path string) *FileHabitStore {
	return &FileHabitStore{
		path:   path,
		habits: []*entity.Habit{},
	}
}

// Path returns the backing file path.
func (s *FileHabitStore) Path() string {
	return s.path
}

// Load replaces the in-memory collection with the file contents.
// A missing file leaves the collection empty. A corrupt file is moved to
// <path>.corrupt and the collection starts empty.
func (s *FileHabitStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits = []*entity.Habit{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("No habit data file found, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("failed to read habit data file: %w", err)
	}

	var file habitFile
	if err := json.Unmarshal(data, &file); err != nil {
		return s.setAsideCorrupt("error", err)
	}

	habits := make([]*entity.Habit, 0, len(file.Habits))
	for _, rec := range file.Habits {
		habit, err := entity.HabitFromRecord(rec)
		if err != nil {
			return s.setAsideCorrupt("habit", rec.Name, "error", err)
		}
		if slices.ContainsFunc(habits, func(h *entity.Habit) bool { return h.Name() == habit.Name() }) {
			return s.setAsideCorrupt("duplicate", habit.Name())
		}
		habits = append(habits, habit)
	}

	s.habits = habits
	slog.Info("Habits loaded", "path", s.path, "count", len(habits))
	return nil
}

// setAsideCorrupt renames the data file to its backup path. Lock held.
func (s *FileHabitStore) setAsideCorrupt(attrs ...any) error {
	backup := s.path + corruptSuffix
	if err := os.Rename(s.path, backup); err != nil {
		return fmt.Errorf("failed to set aside corrupt habit data file: %w", err)
	}
	slog.Warn("Habit data file is corrupt, starting empty",
		append([]any{"path", s.path, "backup", backup}, attrs...)...)
	return nil
}

// Flush writes the whole collection to the backing file.
func (s *FileHabitStore) Flush() error {
	s.mu.RLock()
	file := habitFile{Habits: make([]entity.HabitRecord, len(s.habits))}
	for i, h := range s.habits {
		file.Habits[i] = h.ToRecord()
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(file, "", fileIndent)
	if err != nil {
		return fmt.Errorf("failed to encode habits: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write habit data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace habit data file: %w", err)
	}

	slog.Info("Habits saved", "path", s.path, "count", len(file.Habits))
	return nil
}

// Create appends a habit to the collection.
func (s *FileHabitStore) Create(_ context.Context, habit *entity.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(habit.Name()) >= 0 {
		return domainerror.ErrHabitAlreadyExists
	}
	s.habits = append(s.habits, habit.Clone())
	return nil
}

// FindByName retrieves a copy of the habit with the given name.
func (s *FileHabitStore) FindByName(_ context.Context, name string) (*entity.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(name)
	if i < 0 {
		return nil, domainerror.ErrHabitNotFound
	}
	return s.habits[i].Clone(), nil
}

// FindAll retrieves copies of every habit in insertion order.
func (s *FileHabitStore) FindAll(_ context.Context) ([]*entity.Habit, error) {
	return s.filter(func(*entity.Habit) bool { return true }), nil
}

// FindByPeriodicity retrieves copies of the habits with the given periodicity.
func (s *FileHabitStore) FindByPeriodicity(_ context.Context, periodicity entity.Periodicity) ([]*entity.Habit, error) {
	return s.filter(func(h *entity.Habit) bool { return h.Periodicity() == periodicity }), nil
}

// ExistsByName reports whether a habit with the given name is stored.
func (s *FileHabitStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOf(name) >= 0, nil
}

// Mutate applies fn to a copy of the named habit under the write lock and
// stores the copy, keeping the habit's position.
func (s *FileHabitStore) Mutate(_ context.Context, name string, fn func(*entity.Habit) error) (*entity.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return nil, domainerror.ErrHabitNotFound
	}

	habit := s.habits[i].Clone()
	if err := fn(habit); err != nil {
		return nil, err
	}
	if j := s.indexOf(habit.Name()); j >= 0 && j != i {
		return nil, domainerror.ErrHabitAlreadyExists
	}

	s.habits[i] = habit
	return habit.Clone(), nil
}

// DeleteByName removes the habit with the given name.
func (s *FileHabitStore) DeleteByName(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return domainerror.ErrHabitNotFound
	}
	s.habits = slices.Delete(s.habits, i, i+1)
	return nil
}

// indexOf must be called with the lock held.
func (s *FileHabitStore) indexOf(name string) int {
	return slices.IndexFunc(s.habits, func(h *entity.Habit) bool { return h.Name() == name })
}

func (s *FileHabitStore) filter(keep func(*entity.Habit) bool) []*entity.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*entity.Habit{}
	for _, h := range s.habits {
		if keep(h) {
			out = append(out, h.Clone())
		}
	}
	return out
}
