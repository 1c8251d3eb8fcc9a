// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// HabitModel represents the habits table in the database.
type HabitModel struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Name        string                 `gorm:"type:varchar(255);not null;uniqueIndex"`
	Periodicity string                 `gorm:"type:varchar(20);not null;index"`
	StartDate   time.Time              `gorm:"type:date;not null"`
	Completions []HabitCompletionModel `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time              `gorm:"not null"`
	UpdatedAt   time.Time              `gorm:"not null"`
}

// TableName returns the table name for the HabitModel.
func (HabitModel) TableName() string {
	return "habits"
}

// HabitCompletionModel represents the habit_completions table in the database.
// Position keeps the recording order of the completion history.
type HabitCompletionModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	HabitID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CompletedOn time.Time `gorm:"type:date;not null"`
	Position    int       `gorm:"not null"`
}

// TableName returns the table name for the HabitCompletionModel.
func (HabitCompletionModel) TableName() string {
	return "habit_completions"
}

// ToEntity converts a HabitModel to a domain Habit entity.
// Completions must be ordered by position.
func (m *HabitModel) ToEntity() (*entity.Habit, error) {
	completions := make([]time.Time, len(m.Completions))
	for i, c := range m.Completions {
		completions[i] = c.CompletedOn
	}

	return entity.RestoreHabit(m.ID, m.Name, entity.Periodicity(m.Periodicity), m.StartDate, completions)
}

// HabitFromEntity creates a HabitModel from a domain Habit entity.
func HabitFromEntity(habit *entity.Habit) *HabitModel {
	dates := habit.CompletionDates()
	completions := make([]HabitCompletionModel, len(dates))
	for i, d := range dates {
		completions[i] = HabitCompletionModel{
			HabitID:     habit.ID(),
			CompletedOn: d,
			Position:    i,
		}
	}

	return &HabitModel{
		ID:          habit.ID(),
		Name:        habit.Name(),
		Periodicity: string(habit.Periodicity()),
		StartDate:   habit.StartDate(),
		Completions: completions,
	}
}

// AllModels lists every model managed by auto-migration.
func AllModels() []any {
	return []any{&HabitModel{}, &HabitCompletionModel{}}
}
