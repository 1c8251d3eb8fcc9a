// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

// weeklyStreakWindowDays is the largest gap between two completions of a
// weekly habit that still keeps its streak alive.
const weeklyStreakWindowDays = 7

// Habit represents a single activity the user decided to track.
//
// A Habit is owned by exactly one collection and is not safe for concurrent use.
type Habit struct {
	id              uuid.UUID
	name            string
	periodicity     Periodicity
	startDate       time.Time
	completionDates []time.Time
}

// HabitUpdate describes a partial edit of a habit. Nil fields are left unchanged.
type HabitUpdate struct {
	Name        *string
	Periodicity *Periodicity
	StartDate   *time.Time
}

// NewHabit creates a new Habit entity with an empty completion history.
func NewHabit(name string, periodicity Periodicity, startDate time.Time) (*Habit, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePeriodicity(periodicity); err != nil {
		return nil, err
	}
	if err := validateStartDate(startDate); err != nil {
		return nil, err
	}

	return &Habit{
		id:              uuid.New(),
		name:            name,
		periodicity:     periodicity,
		startDate:       NormalizeDate(startDate),
		completionDates: []time.Time{},
	}, nil
}

// ID returns the habit identifier.
func (h *Habit) ID() uuid.UUID {
	return h.id
}

// Name returns the habit name.
func (h *Habit) Name() string {
	return h.name
}

// Periodicity returns the habit periodicity.
func (h *Habit) Periodicity() Periodicity {
	return h.periodicity
}

// StartDate returns the date habit tracking started.
func (h *Habit) StartDate() time.Time {
	return h.startDate
}

// MarkCompleted records a completion on the given date.
// Duplicate dates are kept and counted separately.
func (h *Habit) MarkCompleted(date time.Time) error {
	if NormalizeDate(date).Before(MinDate) {
		return domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidCompletionDate,
			"completion date must be on or after "+FormatDate(MinDate),
		)
	}

	day := NormalizeDate(date)
	if day.Before(h.startDate) {
		return domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeCompletionBeforeStart,
			"completion date cannot be earlier than the start date",
		)
	}

	h.completionDates = append(h.completionDates, day)
	return nil
}

// CompletionDates returns a copy of the completion history in recording order.
func (h *Habit) CompletionDates() []time.Time {
	return slices.Clone(h.completionDates)
}

// LongestStreak calculates the longest run of consecutive completions
// according to the habit periodicity:
//   - daily: two completions exactly one day apart;
//   - weekly: two completions at most seven days apart;
//   - monthly: two completions in the same calendar month.
func (h *Habit) LongestStreak() (int, error) {
	if len(h.completionDates) == 0 {
		return 0, nil
	}
	consecutive, err := adjacencyRule(h.periodicity)
	if err != nil {
		return 0, err
	}

	sorted := slices.Clone(h.completionDates)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	current, longest := 1, 1
	for i := 1; i < len(sorted); i++ {
		if consecutive(sorted[i-1], sorted[i]) {
			current++
			longest = max(longest, current)
		} else {
			current = 1
		}
	}

	return longest, nil
}

// StreakDurationString renders a streak length in the unit of the habit periodicity.
func (h *Habit) StreakDurationString(streak int) string {
	switch h.periodicity {
	case PeriodicityDaily:
		return fmt.Sprintf("%d day(s)", streak)
	case PeriodicityWeekly:
		return fmt.Sprintf("%d week(s)", streak)
	case PeriodicityMonthly:
		return fmt.Sprintf("%d month(s)", streak)
	default:
		return fmt.Sprintf("%d (units)", streak)
	}
}

// Edit applies a partial update. All supplied fields are validated before any
// of them is applied, so a failed edit leaves the habit untouched.
//
// Moving the start date forward drops every completion earlier than the new date.
func (h *Habit) Edit(update HabitUpdate) error {
	if update.Name != nil {
		if err := validateName(*update.Name); err != nil {
			return err
		}
	}
	if update.Periodicity != nil {
		if err := validatePeriodicity(*update.Periodicity); err != nil {
			return err
		}
	}
	if update.StartDate != nil {
		if err := validateStartDate(*update.StartDate); err != nil {
			return err
		}
	}

	if update.Name != nil {
		h.name = *update.Name
	}
	if update.Periodicity != nil {
		h.periodicity = *update.Periodicity
	}
	if update.StartDate != nil {
		h.startDate = NormalizeDate(*update.StartDate)
		h.completionDates = slices.DeleteFunc(h.completionDates, func(d time.Time) bool {
			return d.Before(h.startDate)
		})
	}

	return nil
}

// Clone returns a deep copy of the habit.
func (h *Habit) Clone() *Habit {
	c := *h
	c.completionDates = slices.Clone(h.completionDates)
	return &c
}

// String returns a human-readable representation used for display only.
func (h *Habit) String() string {
	return fmt.Sprintf("Habit(name='%s', periodicity='%s', start_date='%s')",
		h.name, h.periodicity, FormatDate(h.startDate))
}

// adjacencyRule returns the predicate deciding whether two sorted completions
// belong to the same streak.
func adjacencyRule(p Periodicity) (func(prev, next time.Time) bool, error) {
	switch p {
	case PeriodicityDaily:
		return func(prev, next time.Time) bool {
			return daysBetween(prev, next) == 1
		}, nil
	case PeriodicityWeekly:
		return func(prev, next time.Time) bool {
			return daysBetween(prev, next) <= weeklyStreakWindowDays
		}, nil
	case PeriodicityMonthly:
		return sameMonth, nil
	default:
		return nil, domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidPeriodicity,
			fmt.Sprintf("unsupported periodicity: %s", p),
		)
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidHabitName,
			"habit name must be a non-empty string",
		)
	}
	return nil
}

func validatePeriodicity(p Periodicity) error {
	if !p.IsValid() {
		return domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidPeriodicity,
			"habit periodicity must be one of daily, weekly or monthly",
		)
	}
	return nil
}

func validateStartDate(date time.Time) error {
	if NormalizeDate(date).Before(MinDate) {
		return domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidStartDate,
			"start date must be on or after "+FormatDate(MinDate),
		)
	}
	return nil
}
