// Package persistence implements repository interfaces for database and file storage.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
	"github.com/habit-tracker/tracker/internal/integration/persistence/model"
)

// habitRepository implements the adapter.HabitRepository interface on GORM.
type habitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new habit repository instance.
func NewHabitRepository(db *gorm.DB) adapter.HabitRepository {
	return &habitRepository{
		db: db,
	}
}

func withOrderedCompletions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts a habit together with its completion history.
func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	exists, err := r.ExistsByName(ctx, habit.Name())
	if err != nil {
		return err
	}
	if exists {
		return domainerror.ErrHabitAlreadyExists
	}

	habitModel := model.HabitFromEntity(habit)
	return r.db.WithContext(ctx).Create(habitModel).Error
}

// FindByName retrieves a habit by its name.
func (r *habitRepository) FindByName(ctx context.Context, name string) (*entity.Habit, error) {
	var habitModel model.HabitModel
	result := r.db.WithContext(ctx).
		Preload("Completions", withOrderedCompletions).
		Where("name = ?", name).
		First(&habitModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHabitNotFound
		}
		return nil, result.Error
	}
	return habitModel.ToEntity()
}

// FindAll retrieves every habit in insertion order.
func (r *habitRepository) FindAll(ctx context.Context) ([]*entity.Habit, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByPeriodicity retrieves the habits with the given periodicity.
func (r *habitRepository) FindByPeriodicity(ctx context.Context, periodicity entity.Periodicity) ([]*entity.Habit, error) {
	return r.find(r.db.WithContext(ctx).Where("periodicity = ?", string(periodicity)))
}

func (r *habitRepository) find(query *gorm.DB) ([]*entity.Habit, error) {
	var habitModels []model.HabitModel
	if err := query.Preload("Completions", withOrderedCompletions).
		Order("created_at ASC").
		Find(&habitModels).Error; err != nil {
		return nil, err
	}

	habits := make([]*entity.Habit, 0, len(habitModels))
	for i := range habitModels {
		habit, err := habitModels[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("failed to restore habit %q: %w", habitModels[i].Name, err)
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

// ExistsByName reports whether a habit with the given name is stored.
func (r *habitRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.HabitModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Mutate locks the habit row for the length of a transaction, applies fn and
// rewrites the habit together with its completion history.
func (r *habitRepository) Mutate(ctx context.Context, name string, fn func(*entity.Habit) error) (*entity.Habit, error) {
	var habit *entity.Habit

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.HabitModel
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Completions", withOrderedCompletions).
			Where("name = ?", name).
			First(&current)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrHabitNotFound
			}
			return result.Error
		}

		h, err := current.ToEntity()
		if err != nil {
			return fmt.Errorf("failed to restore habit %q: %w", name, err)
		}
		if err := fn(h); err != nil {
			return err
		}

		if h.Name() != name {
			var taken int64
			if err := tx.Model(&model.HabitModel{}).
				Where("name = ? AND id <> ?", h.Name(), h.ID()).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return domainerror.ErrHabitAlreadyExists
			}
		}

		habitModel := model.HabitFromEntity(h)
		if err := tx.Model(&model.HabitModel{}).
			Where("id = ?", habitModel.ID).
			Updates(map[string]any{
				"name":        habitModel.Name,
				"periodicity": habitModel.Periodicity,
				"start_date":  habitModel.StartDate,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("habit_id = ?", habitModel.ID).Delete(&model.HabitCompletionModel{}).Error; err != nil {
			return err
		}
		if len(habitModel.Completions) > 0 {
			if err := tx.Create(&habitModel.Completions).Error; err != nil {
				return err
			}
		}

		habit = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// DeleteByName removes a habit and its completion history.
func (r *habitRepository) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var habitModel model.HabitModel
		if err := tx.Where("name = ?", name).First(&habitModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrHabitNotFound
			}
			return err
		}

		if err := tx.Where("habit_id = ?", habitModel.ID).Delete(&model.HabitCompletionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.HabitModel{}, "id = ?", habitModel.ID).Error
	})
}
