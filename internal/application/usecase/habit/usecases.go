package habit

import "github.com/habit-tracker/tracker/internal/application/adapter"

// UseCases bundles every habit use case over one repository and cache.
type UseCases struct {
	Create        *CreateHabitUseCase
	MarkCompleted *MarkHabitCompletedUseCase
	List          *ListHabitsUseCase
	Streak        *GetHabitStreakUseCase
	LongestStreak *GetLongestStreakAllHabitsUseCase
	Edit          *EditHabitUseCase
	Delete        *DeleteHabitUseCase
}

// NewUseCases creates the habit use cases. streakCache may be nil.
func NewUseCases(habitRepo adapter.HabitRepository, streakCache adapter.StreakCache) *UseCases {
	return &UseCases{
		Create:        NewCreateHabitUseCase(habitRepo),
		MarkCompleted: NewMarkHabitCompletedUseCase(habitRepo, streakCache),
		List:          NewListHabitsUseCase(habitRepo),
		Streak:        NewGetHabitStreakUseCase(habitRepo, streakCache),
		LongestStreak: NewGetLongestStreakAllHabitsUseCase(habitRepo, streakCache),
		Edit:          NewEditHabitUseCase(habitRepo, streakCache),
		Delete:        NewDeleteHabitUseCase(habitRepo, streakCache),
	}
}
