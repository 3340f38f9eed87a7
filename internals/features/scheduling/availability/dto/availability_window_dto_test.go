// file: internals/features/scheduling/availability/dto/availability_window_dto_test.go
package dto

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	model "formaplan_backend/internals/features/scheduling/availability/model"
)

func TestCreateWindowToModel(t *testing.T) {
	tenantID, trainerID := uuid.New(), uuid.New()

	t.Run("defaults to available kind", func(t *testing.T) {
		req := CreateAvailabilityWindowRequest{
			TrainerAvailabilityWindowDate:      "2026-03-09",
			TrainerAvailabilityWindowStartTime: "09:00",
			TrainerAvailabilityWindowEndTime:   "12:00",
		}
		w, err := req.ToModel(tenantID, trainerID)
		if err != nil {
			t.Fatalf("ToModel: %v", err)
		}
		if w.TrainerAvailabilityWindowKind != model.KindAvailable {
			t.Fatalf("kind = %s, want available", w.TrainerAvailabilityWindowKind)
		}
		if w.TrainerAvailabilityWindowTrainerID != trainerID {
			t.Fatal("trainer id not forced from the caller scope")
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		req := CreateAvailabilityWindowRequest{
			TrainerAvailabilityWindowDate:      "2026-03-09",
			TrainerAvailabilityWindowStartTime: "12:00",
			TrainerAvailabilityWindowEndTime:   "09:00",
		}
		if _, err := req.ToModel(tenantID, trainerID); !errors.Is(err, ErrEndNotAfterStart) {
			t.Fatalf("got %v, want ErrEndNotAfterStart", err)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		bad := "busy"
		req := CreateAvailabilityWindowRequest{
			TrainerAvailabilityWindowDate:      "2026-03-09",
			TrainerAvailabilityWindowStartTime: "09:00",
			TrainerAvailabilityWindowEndTime:   "12:00",
			TrainerAvailabilityWindowKind:      &bad,
		}
		if _, err := req.ToModel(tenantID, trainerID); err == nil {
			t.Fatal("want error for unknown kind")
		}
	})
}
