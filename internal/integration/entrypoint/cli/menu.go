// Package cli implements the interactive habit tracker menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/habit-tracker/tracker/internal/application/usecase/habit"
	"github.com/habit-tracker/tracker/internal/domain/entity"
	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

// errQuit ends the menu loop.
var errQuit = errors.New("quit")

// Menu is the text menu over the habit use cases.
type Menu struct {
	useCases *habit.UseCases
	save     func() error
	in       *bufio.Scanner
	out      io.Writer
}

// NewMenu creates a menu reading answers from in and writing to out.
// save is called when the user quits or input ends.
func NewMenu(useCases *habit.UseCases, save func() error, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		useCases: useCases,
		save:     save,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops until the user quits, then saves.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()

		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return m.quit()
		}

		err := m.dispatch(ctx, strings.TrimSpace(choice))
		if errors.Is(err, errQuit) {
			return m.quit()
		}
		if err != nil {
			m.printError(err)
		}
	}
}

func (m *Menu) printMenu() {
	m.println("\nHabit Tracker Menu:")
	m.println("1. Add Habit")
	m.println("2. Mark Habit as Completed")
	m.println("3. List All Habits")
	m.println("4. List Habits by Periodicity")
	m.println("5. Get Longest Streak for All Habits")
	m.println("6. Get Longest Streak for a Habit")
	m.println("7. Edit/Delete Habit")
	m.println("8. Quit")
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.addHabit(ctx)
	case "2":
		return m.markCompleted(ctx)
	case "3":
		return m.listAll(ctx)
	case "4":
		return m.listByPeriodicity(ctx)
	case "5":
		return m.longestStreakAll(ctx)
	case "6":
		return m.longestStreak(ctx)
	case "7":
		return m.editOrDelete(ctx)
	case "8":
		return errQuit
	default:
		m.println("Invalid choice. Please try again.")
		return nil
	}
}

func (m *Menu) addHabit(ctx context.Context) error {
	name, _ := m.prompt("Enter habit name: ")
	periodicity, _ := m.prompt("Enter habit periodicity (e.g., daily, weekly, monthly): ")
	startDate, err := m.promptDate("Enter start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	if _, err := m.useCases.Create.Execute(ctx, habit.CreateHabitInput{
		Name:        name,
		Periodicity: periodicity,
		StartDate:   startDate,
	}); err != nil {
		return err
	}
	m.println("Habit added successfully.")
	return nil
}

func (m *Menu) markCompleted(ctx context.Context) error {
	name, _ := m.prompt("Enter habit name: ")
	date, err := m.promptDate("Enter completion date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	if _, err := m.useCases.MarkCompleted.Execute(ctx, habit.MarkHabitCompletedInput{
		Name: name,
		Date: date,
	}); err != nil {
		return err
	}
	m.println("Habit marked as completed.")
	return nil
}

func (m *Menu) listAll(ctx context.Context) error {
	output, err := m.useCases.List.Execute(ctx, habit.ListHabitsInput{})
	if err != nil {
		return err
	}
	if len(output.Habits) == 0 {
		m.println("No habits tracked yet.")
		return nil
	}

	m.println("\nAll Habits:")
	m.printHabits(output.Habits)
	return nil
}

func (m *Menu) listByPeriodicity(ctx context.Context) error {
	periodicity, _ := m.prompt("Enter periodicity to filter by: ")

	output, err := m.useCases.List.Execute(ctx, habit.ListHabitsInput{Periodicity: &periodicity})
	if err != nil {
		return err
	}
	if len(output.Habits) == 0 {
		m.printf("No habits found with periodicity '%s'.\n", periodicity)
		return nil
	}

	m.printf("\nHabits with periodicity '%s':\n", periodicity)
	m.printHabits(output.Habits)
	return nil
}

func (m *Menu) longestStreakAll(ctx context.Context) error {
	output, err := m.useCases.LongestStreak.Execute(ctx)
	if err != nil {
		return err
	}
	if output.Name == "" {
		m.println("No habits tracked yet.")
		return nil
	}

	m.printf("Longest streak for all habits: %s (habit '%s')\n", output.Duration, output.Name)
	return nil
}

func (m *Menu) longestStreak(ctx context.Context) error {
	name, _ := m.prompt("Enter habit name: ")

	output, err := m.useCases.Streak.Execute(ctx, habit.GetHabitStreakInput{Name: name})
	if err != nil {
		return err
	}
	m.printf("Longest streak for habit '%s': %s\n", name, output.Duration)
	return nil
}

func (m *Menu) editOrDelete(ctx context.Context) error {
	name, _ := m.prompt("Enter the name of the habit to edit/delete: ")
	m.println("1. Edit Habit")
	m.println("2. Delete Habit")
	choice, _ := m.prompt("Enter your choice: ")

	switch strings.TrimSpace(choice) {
	case "1":
		return m.edit(ctx, name)
	case "2":
		if _, err := m.useCases.Delete.Execute(ctx, habit.DeleteHabitInput{Name: name}); err != nil {
			return err
		}
		m.println("Habit deleted successfully.")
		return nil
	default:
		m.println("Invalid choice. Please try again.")
		return nil
	}
}

// edit treats every blank answer as "leave unchanged".
func (m *Menu) edit(ctx context.Context, name string) error {
	input := habit.EditHabitInput{Name: name}

	if newName, _ := m.prompt("Enter the new name (blank to keep): "); strings.TrimSpace(newName) != "" {
		input.NewName = &newName
	}
	if periodicity, _ := m.prompt("Enter the new periodicity (blank to keep): "); strings.TrimSpace(periodicity) != "" {
		input.Periodicity = &periodicity
	}
	if raw, _ := m.prompt("Enter the new start date (YYYY-MM-DD, blank to keep): "); strings.TrimSpace(raw) != "" {
		startDate, err := entity.ParseDate(raw)
		if err != nil {
			return err
		}
		input.StartDate = &startDate
	}

	output, err := m.useCases.Edit.Execute(ctx, input)
	if err != nil {
		return err
	}
	if output.PrunedCompletions > 0 {
		m.printf("Removed %d completion(s) before the new start date.\n", output.PrunedCompletions)
	}
	m.println("Habit edited successfully.")
	return nil
}

func (m *Menu) quit() error {
	if m.save != nil {
		if err := m.save(); err != nil {
			m.printf("An error occurred while saving data: %v\n", err)
			return err
		}
	}
	m.println("Exiting Habit Tracker. Your data has been saved.")
	return nil
}

// prompt writes the question and reads one line. ok is false at end of input.
func (m *Menu) prompt(question string) (string, bool) {
	m.printf("%s", question)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) promptDate(question string) (time.Time, error) {
	raw, _ := m.prompt(question)
	return entity.ParseDate(raw)
}

func (m *Menu) printHabits(habits []*entity.Habit) {
	for _, h := range habits {
		m.println(h.String())
	}
}

// printError shows coded domain errors by message and anything else as unexpected.
func (m *Menu) printError(err error) {
	var habitErr *domainerror.HabitError
	if errors.As(err, &habitErr) {
		m.printf("Error: %s\n", habitErr.Message)
		return
	}
	m.printf("An unexpected error occurred: %v\n", err)
}

func (m *Menu) println(line string) {
	fmt.Fprintln(m.out, line)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
