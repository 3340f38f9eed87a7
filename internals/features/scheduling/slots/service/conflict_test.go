// file: internals/features/scheduling/slots/service/conflict_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return parsed
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return parsed
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		s1, e1, s2, e2         string
		want                   bool
	}{
		{"plain overlap", "09:00", "12:00", "11:00", "13:00", true},
		{"contained", "09:00", "17:00", "10:00", "11:00", true},
		{"identical", "09:00", "12:00", "09:00", "12:00", true},
		{"touching boundary is free", "09:00", "12:00", "12:00", "13:00", false},
		{"touching boundary reversed", "12:00", "13:00", "09:00", "12:00", false},
		{"disjoint", "09:00", "10:00", "14:00", "15:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(clock(t, tt.s1), clock(t, tt.e1), clock(t, tt.s2), clock(t, tt.e2))
			if got != tt.want {
				t.Fatalf("RangesOverlap(%s–%s, %s–%s) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
		})
	}
}

func TestBuildConflicts(t *testing.T) {
	trainerT := uuid.New()
	roomR := uuid.New()
	otherTrainer := uuid.New()
	sessionID := uuid.New()
	date := "2026-03-09"

	name := func(s string) *string { return &s }

	baseSlot := func() CandidateSlot {
		return CandidateSlot{
			SlotID:      uuid.New(),
			Date:        day(t, date),
			StartTime:   clock(t, "09:00"),
			EndTime:     clock(t, "12:00"),
			SessionID:   sessionID,
			SessionName: "Go Fundamentals",
			TrainerID:   &trainerT,
			TrainerName: name("T. Morel"),
		}
	}

	t.Run("overlapping window with shared trainer conflicts", func(t *testing.T) {
		q := ConflictQuery{
			Date:      day(t, date),
			Start:     clock(t, "11:00"),
			End:       clock(t, "13:00"),
			TrainerID: &trainerT,
		}
		got := BuildConflicts(q, []CandidateSlot{baseSlot()})
		if len(got) != 1 {
			t.Fatalf("want 1 conflict, got %d", len(got))
		}
		if got[0].Kind != ConflictTrainer {
			t.Fatalf("kind = %s, want trainer", got[0].Kind)
		}
		if got[0].SessionName != "Go Fundamentals" || got[0].ResourceName != "T. Morel" {
			t.Fatalf("labels not carried: %+v", got[0])
		}
	})

	t.Run("window starting at the existing end is clean", func(t *testing.T) {
		q := ConflictQuery{
			Date:      day(t, date),
			Start:     clock(t, "12:00"),
			End:       clock(t, "13:00"),
			TrainerID: &trainerT,
		}
		if got := BuildConflicts(q, []CandidateSlot{baseSlot()}); len(got) != 0 {
			t.Fatalf("want no conflicts, got %+v", got)
		}
	})

	t.Run("different trainer never conflicts", func(t *testing.T) {
		q := ConflictQuery{
			Date:      day(t, date),
			Start:     clock(t, "10:00"),
			End:       clock(t, "11:00"),
			TrainerID: &otherTrainer,
		}
		if got := BuildConflicts(q, []CandidateSlot{baseSlot()}); len(got) != 0 {
			t.Fatalf("want no conflicts, got %+v", got)
		}
	})

	t.Run("different date never conflicts", func(t *testing.T) {
		q := ConflictQuery{
			Date:      day(t, "2026-03-10"),
			Start:     clock(t, "10:00"),
			End:       clock(t, "11:00"),
			TrainerID: &trainerT,
		}
		if got := BuildConflicts(q, []CandidateSlot{baseSlot()}); len(got) != 0 {
			t.Fatalf("want no conflicts, got %+v", got)
		}
	})

	t.Run("room conflicts reported as room kind", func(t *testing.T) {
		slot := baseSlot()
		slot.TrainerID = nil
		slot.TrainerName = nil
		slot.RoomID = &roomR
		slot.RoomName = name("Salle A")

		q := ConflictQuery{
			Date:   day(t, date),
			Start:  clock(t, "10:00"),
			End:    clock(t, "11:00"),
			RoomID: &roomR,
		}
		got := BuildConflicts(q, []CandidateSlot{slot})
		if len(got) != 1 || got[0].Kind != ConflictRoom {
			t.Fatalf("want 1 room conflict, got %+v", got)
		}
	})

	t.Run("slot sharing trainer and room yields one conflict per kind", func(t *testing.T) {
		slot := baseSlot()
		slot.RoomID = &roomR
		slot.RoomName = name("Salle A")

		q := ConflictQuery{
			Date:      day(t, date),
			Start:     clock(t, "10:00"),
			End:       clock(t, "11:00"),
			TrainerID: &trainerT,
			RoomID:    &roomR,
		}
		got := BuildConflicts(q, []CandidateSlot{slot})
		if len(got) != 2 {
			t.Fatalf("want 2 conflicts (trainer + room), got %d", len(got))
		}
		kinds := map[ConflictKind]bool{got[0].Kind: true, got[1].Kind: true}
		if !kinds[ConflictTrainer] || !kinds[ConflictRoom] {
			t.Fatalf("kinds = %+v, want one trainer and one room", kinds)
		}
	})

	t.Run("excluded slot is ignored in edit mode", func(t *testing.T) {
		slot := baseSlot()
		q := ConflictQuery{
			Date:      day(t, date),
			Start:     clock(t, "10:00"),
			End:       clock(t, "11:00"),
			TrainerID: &trainerT,
			ExcludeID: &slot.SlotID,
		}
		if got := BuildConflicts(q, []CandidateSlot{slot}); len(got) != 0 {
			t.Fatalf("want no conflicts with exclusion, got %+v", got)
		}
	})

	t.Run("empty candidate set yields empty non-nil slice", func(t *testing.T) {
		q := ConflictQuery{
			Date:      day(t, date),
			Start:     clock(t, "10:00"),
			End:       clock(t, "11:00"),
			TrainerID: &trainerT,
		}
		got := BuildConflicts(q, nil)
		if got == nil || len(got) != 0 {
			t.Fatalf("want empty slice, got %v", got)
		}
	})
}
