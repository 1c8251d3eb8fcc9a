package entity

import (
	"time"

	"github.com/google/uuid"

	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

// HabitRecord is the plain structured form of a habit used by persistence.
// Dates are encoded as YYYY-MM-DD strings.
type HabitRecord struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Periodicity     string   `json:"periodicity"`
	StartDate       string   `json:"start_date"`
	CompletionDates []string `json:"completion_dates"`
}

// ToRecord exports the full state of the habit.
func (h *Habit) ToRecord() HabitRecord {
	completions := make([]string, len(h.completionDates))
	for i, d := range h.completionDates {
		completions[i] = FormatDate(d)
	}

	return HabitRecord{
		ID:              h.id.String(),
		Name:            h.name,
		Periodicity:     string(h.periodicity),
		StartDate:       FormatDate(h.startDate),
		CompletionDates: completions,
	}
}

// HabitFromRecord rebuilds a habit, including its completion history, from a record.
// Records without a valid id receive a new one.
func HabitFromRecord(rec HabitRecord) (*Habit, error) {
	periodicity, err := ParsePeriodicity(rec.Periodicity)
	if err != nil {
		return nil, err
	}
	startDate, err := ParseDate(rec.StartDate)
	if err != nil {
		return nil, err
	}

	habit, err := NewHabit(rec.Name, periodicity, startDate)
	if err != nil {
		return nil, err
	}
	if id, err := uuid.Parse(rec.ID); err == nil {
		habit.id = id
	}

	for _, raw := range rec.CompletionDates {
		date, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		if err := habit.MarkCompleted(date); err != nil {
			return nil, domainerror.NewInvalidArgumentError(
				domainerror.ErrCodeInvalidHabitRecord,
				"habit '"+rec.Name+"' has completion "+raw+" before its start date",
			)
		}
	}

	return habit, nil
}

// RestoreHabit rebuilds a habit from already-typed persisted values.
func RestoreHabit(id uuid.UUID, name string, periodicity Periodicity, startDate time.Time, completions []time.Time) (*Habit, error) {
	habit, err := NewHabit(name, periodicity, startDate)
	if err != nil {
		return nil, err
	}
	if id != uuid.Nil {
		habit.id = id
	}
	for _, d := range completions {
		if err := habit.MarkCompleted(d); err != nil {
			return nil, err
		}
	}
	return habit, nil
}
