package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

func TestHabit_ToRecord(t *testing.T) {
	h := mustHabit(t, "Report", PeriodicityMonthly, date(2024, 1, 1))
	mustComplete(t, h, date(2024, 1, 20), date(2024, 1, 5))

	rec := h.ToRecord()

	if rec.ID != h.ID().String() {
		t.Errorf("expected id %s, got %s", h.ID(), rec.ID)
	}
	if rec.Name != "Report" || rec.Periodicity != "monthly" || rec.StartDate != "2024-01-01" {
		t.Errorf("unexpected record header: %+v", rec)
	}
	if len(rec.CompletionDates) != 2 || rec.CompletionDates[0] != "2024-01-20" || rec.CompletionDates[1] != "2024-01-05" {
		t.Errorf("unexpected completion dates: %v", rec.CompletionDates)
	}
}

func TestHabitFromRecord(t *testing.T) {
	t.Run("restores full state including history order", func(t *testing.T) {
		original := mustHabit(t, "Jog", PeriodicityWeekly, date(2024, 1, 1))
		mustComplete(t, original, date(2024, 1, 13), date(2024, 1, 1), date(2024, 1, 7))

		restored, err := HabitFromRecord(original.ToRecord())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if restored.ID() != original.ID() {
			t.Errorf("expected id %s, got %s", original.ID(), restored.ID())
		}
		if restored.String() != original.String() {
			t.Errorf("expected %s, got %s", original, restored)
		}
		got, want := restored.CompletionDates(), original.CompletionDates()
		if len(got) != len(want) {
			t.Fatalf("expected %d completions, got %d", len(want), len(got))
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Errorf("completion %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	})

	t.Run("record without id receives a fresh one", func(t *testing.T) {
		h, err := HabitFromRecord(HabitRecord{Name: "Read", Periodicity: "daily", StartDate: "2024-01-01"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if h.ID() == uuid.Nil {
			t.Error("expected a generated id")
		}
	})

	tests := []struct {
		name string
		rec  HabitRecord
	}{
		{"empty name", HabitRecord{Name: "", Periodicity: "daily", StartDate: "2024-01-01"}},
		{"unknown periodicity", HabitRecord{Name: "Read", Periodicity: "hourly", StartDate: "2024-01-01"}},
		{"malformed start date", HabitRecord{Name: "Read", Periodicity: "daily", StartDate: "01/01/2024"}},
		{"malformed completion", HabitRecord{Name: "Read", Periodicity: "daily", StartDate: "2024-01-01", CompletionDates: []string{"tomorrow"}}},
		{"completion before start", HabitRecord{Name: "Read", Periodicity: "daily", StartDate: "2024-01-10", CompletionDates: []string{"2024-01-09"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" is rejected", func(t *testing.T) {
			if _, err := HabitFromRecord(tt.rec); !errors.Is(err, domainerror.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestRestoreHabit(t *testing.T) {
	id := uuid.New()
	h, err := RestoreHabit(id, "Read", PeriodicityDaily, date(2024, 1, 1), []time.Time{date(2024, 1, 2), date(2024, 1, 3)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if h.ID() != id {
		t.Errorf("expected id %s, got %s", id, h.ID())
	}
	if streak, _ := h.LongestStreak(); streak != 2 {
		t.Errorf("expected streak 2, got %d", streak)
	}
}
