// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/habit-tracker/tracker/internal/application/usecase/habit"
	"github.com/habit-tracker/tracker/internal/domain/entity"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// CreateHabitRequest represents the request body for habit creation.
type CreateHabitRequest struct {
	Name        string `json:"name" binding:"required"`
	Periodicity string `json:"periodicity" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
}

// MarkCompletedRequest represents the request body for recording a completion.
type MarkCompletedRequest struct {
	Date string `json:"date" binding:"required"`
}

// UpdateHabitRequest represents the request body for a partial habit update.
type UpdateHabitRequest struct {
	Name        *string `json:"name,omitempty"`
	Periodicity *string `json:"periodicity,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
}

// HabitResponse represents a single habit in API responses.
type HabitResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Periodicity     string   `json:"periodicity"`
	StartDate       string   `json:"start_date"`
	CompletionDates []string `json:"completion_dates"`
}

// HabitListResponse represents the response for listing habits.
type HabitListResponse struct {
	Habits []HabitResponse `json:"habits"`
}

// UpdateHabitResponse represents the response of a habit update.
type UpdateHabitResponse struct {
	HabitResponse
	PrunedCompletions int `json:"pruned_completions"`
}

// StreakResponse represents a longest streak in API responses.
type StreakResponse struct {
	Name     string `json:"name"`
	Streak   int    `json:"streak"`
	Duration string `json:"duration"`
}

// ToHabitResponse converts a domain Habit entity to a HabitResponse DTO.
func ToHabitResponse(h *entity.Habit) HabitResponse {
	rec := h.ToRecord()
	return HabitResponse{
		ID:              rec.ID,
		Name:            rec.Name,
		Periodicity:     rec.Periodicity,
		StartDate:       rec.StartDate,
		CompletionDates: rec.CompletionDates,
	}
}

// ToHabitListResponse converts a slice of habits to a HabitListResponse DTO.
func ToHabitListResponse(habits []*entity.Habit) HabitListResponse {
	items := make([]HabitResponse, len(habits))
	for i, h := range habits {
		items[i] = ToHabitResponse(h)
	}
	return HabitListResponse{Habits: items}
}

// ToHabitStreakResponse converts a single habit streak output to a StreakResponse DTO.
func ToHabitStreakResponse(output *habit.GetHabitStreakOutput) StreakResponse {
	return StreakResponse{
		Name:     output.Habit.Name(),
		Streak:   output.Streak,
		Duration: output.Duration,
	}
}

// ToLongestStreakResponse converts the collection-wide streak output to a StreakResponse DTO.
func ToLongestStreakResponse(output *habit.GetLongestStreakAllHabitsOutput) StreakResponse {
	return StreakResponse{
		Name:     output.Name,
		Streak:   output.Streak,
		Duration: output.Duration,
	}
}
