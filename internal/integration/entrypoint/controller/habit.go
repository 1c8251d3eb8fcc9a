// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habit-tracker/tracker/internal/application/usecase/habit"
	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
	"github.com/habit-tracker/tracker/internal/integration/entrypoint/dto"
)

// HabitController handles habit endpoints.
type HabitController struct {
	createUseCase        *habit.CreateHabitUseCase
	markCompletedUseCase *habit.MarkHabitCompletedUseCase
	listUseCase          *habit.ListHabitsUseCase
	streakUseCase        *habit.GetHabitStreakUseCase
	longestUseCase       *habit.GetLongestStreakAllHabitsUseCase
	editUseCase          *habit.EditHabitUseCase
	deleteUseCase        *habit.DeleteHabitUseCase
}

// NewHabitController creates a new habit controller instance.
func NewHabitController(
	createUseCase *habit.CreateHabitUseCase,
	markCompletedUseCase *habit.MarkHabitCompletedUseCase,
	listUseCase *habit.ListHabitsUseCase,
	streakUseCase *habit.GetHabitStreakUseCase,
	longestUseCase *habit.GetLongestStreakAllHabitsUseCase,
	editUseCase *habit.EditHabitUseCase,
	deleteUseCase *habit.DeleteHabitUseCase,
) *HabitController {
	return &HabitController{
		createUseCase:        createUseCase,
		markCompletedUseCase: markCompletedUseCase,
		listUseCase:          listUseCase,
		streakUseCase:        streakUseCase,
		longestUseCase:       longestUseCase,
		editUseCase:          editUseCase,
		deleteUseCase:        deleteUseCase,
	}
}

// Create handles POST /habits requests.
func (c *HabitController) Create(ctx *gin.Context) {
	var req dto.CreateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingHabitFields),
		})
		return
	}

	startDate, err := entity.ParseDate(req.StartDate)
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), habit.CreateHabitInput{
		Name:        req.Name,
		Periodicity: req.Periodicity,
		StartDate:   startDate,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToHabitResponse(output.Habit))
}

// List handles GET /habits requests, optionally filtered by ?periodicity=.
func (c *HabitController) List(ctx *gin.Context) {
	input := habit.ListHabitsInput{}
	if periodicity, ok := ctx.GetQuery("periodicity"); ok {
		input.Periodicity = &periodicity
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitListResponse(output.Habits))
}

// MarkCompleted handles POST /habits/:name/completions requests.
func (c *HabitController) MarkCompleted(ctx *gin.Context) {
	var req dto.MarkCompletedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingHabitFields),
		})
		return
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	output, err := c.markCompletedUseCase.Execute(ctx.Request.Context(), habit.MarkHabitCompletedInput{
		Name: ctx.Param("name"),
		Date: date,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitResponse(output.Habit))
}

// Streak handles GET /habits/:name/streak requests.
func (c *HabitController) Streak(ctx *gin.Context) {
	output, err := c.streakUseCase.Execute(ctx.Request.Context(), habit.GetHabitStreakInput{
		Name: ctx.Param("name"),
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitStreakResponse(output))
}

// LongestStreak handles GET /habits/streaks/longest requests.
func (c *HabitController) LongestStreak(ctx *gin.Context) {
	output, err := c.longestUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLongestStreakResponse(output))
}

// Update handles PATCH /habits/:name requests.
func (c *HabitController) Update(ctx *gin.Context) {
	var req dto.UpdateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := habit.EditHabitInput{
		Name:        ctx.Param("name"),
		NewName:     req.Name,
		Periodicity: req.Periodicity,
	}

	if req.StartDate != nil {
		startDate, err := entity.ParseDate(*req.StartDate)
		if err != nil {
			c.handleHabitError(ctx, err)
			return
		}
		input.StartDate = &startDate
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateHabitResponse{
		HabitResponse:     dto.ToHabitResponse(output.Habit),
		PrunedCompletions: output.PrunedCompletions,
	})
}

// Delete handles DELETE /habits/:name requests.
func (c *HabitController) Delete(ctx *gin.Context) {
	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), habit.DeleteHabitInput{
		Name: ctx.Param("name"),
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleHabitError handles habit errors and returns appropriate HTTP responses.
func (c *HabitController) handleHabitError(ctx *gin.Context, err error) {
	var habitErr *domainerror.HabitError
	if errors.As(err, &habitErr) {
		ctx.JSON(c.getStatusCodeForHabitError(habitErr.Code), dto.ErrorResponse{
			Error: habitErr.Message,
			Code:  string(habitErr.Code),
		})
		return
	}

	slog.Error("Habit request failed",
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForHabitError maps habit error codes to HTTP status codes.
func (c *HabitController) getStatusCodeForHabitError(code domainerror.HabitErrorCode) int {
	switch code {
	case domainerror.ErrCodeHabitNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeHabitAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeInvalidHabitName,
		domainerror.ErrCodeInvalidPeriodicity,
		domainerror.ErrCodeInvalidStartDate,
		domainerror.ErrCodeInvalidCompletionDate,
		domainerror.ErrCodeCompletionBeforeStart,
		domainerror.ErrCodeInvalidHabitRecord,
		domainerror.ErrCodeMissingHabitFields,
		domainerror.ErrCodeInvalidDateFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
