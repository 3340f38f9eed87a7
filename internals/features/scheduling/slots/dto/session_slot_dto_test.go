// file: internals/features/scheduling/slots/dto/session_slot_dto_test.go
package dto

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	model "formaplan_backend/internals/features/scheduling/slots/model"
)

func strPtr(s string) *string { return &s }

func TestCreateToModelRejectsInvertedRange(t *testing.T) {
	req := CreateSessionSlotRequest{
		SessionSlotDate:      "2026-03-09",
		SessionSlotStartTime: "14:00",
		SessionSlotEndTime:   "09:00",
	}
	_, err := req.ToModel(uuid.New(), uuid.New())
	if !errors.Is(err, ErrEndNotAfterStart) {
		t.Fatalf("got %v, want ErrEndNotAfterStart", err)
	}
}

func TestCreateToModelRejectsZeroLengthRange(t *testing.T) {
	req := CreateSessionSlotRequest{
		SessionSlotDate:      "2026-03-09",
		SessionSlotStartTime: "09:00",
		SessionSlotEndTime:   "09:00",
	}
	if _, err := req.ToModel(uuid.New(), uuid.New()); !errors.Is(err, ErrEndNotAfterStart) {
		t.Fatalf("got %v, want ErrEndNotAfterStart", err)
	}
}

func TestCreateToModelDefaults(t *testing.T) {
	tenantID, sessionID := uuid.New(), uuid.New()
	req := CreateSessionSlotRequest{
		SessionSlotDate:      "2026-03-09",
		SessionSlotStartTime: "09:00",
		SessionSlotEndTime:   "12:30",
	}
	slot, err := req.ToModel(tenantID, sessionID)
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}
	if slot.SessionSlotDeliveryMode != model.DeliveryOnSite {
		t.Fatalf("delivery mode = %s, want on_site default", slot.SessionSlotDeliveryMode)
	}
	if slot.SessionSlotTrainerID != nil || slot.SessionSlotRoomID != nil {
		t.Fatal("resources must start unbound")
	}
	if slot.SessionSlotTenantID != tenantID || slot.SessionSlotSessionID != sessionID {
		t.Fatal("tenant/session not forced from the controller arguments")
	}
}

func TestUpdateApplyPartial(t *testing.T) {
	trainerID := uuid.New()
	existing := mustModel(t, "2026-03-09", "09:00", "12:30")
	existing.SessionSlotTrainerID = &trainerID

	req := UpdateSessionSlotRequest{
		SessionSlotEndTime: strPtr("11:00"),
	}
	if err := req.Apply(&existing); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := existing.SessionSlotEndTime.Format("15:04"); got != "11:00" {
		t.Fatalf("end = %s, want 11:00", got)
	}
	if got := existing.SessionSlotStartTime.Format("15:04"); got != "09:00" {
		t.Fatalf("start mutated to %s", got)
	}
	if existing.SessionSlotTrainerID == nil || *existing.SessionSlotTrainerID != trainerID {
		t.Fatal("untouched trainer binding changed")
	}
}

func TestUpdateApplyRejectsResultingInvertedRange(t *testing.T) {
	existing := mustModel(t, "2026-03-09", "09:00", "12:30")

	req := UpdateSessionSlotRequest{
		SessionSlotEndTime: strPtr("08:00"),
	}
	if err := req.Apply(&existing); !errors.Is(err, ErrEndNotAfterStart) {
		t.Fatalf("got %v, want ErrEndNotAfterStart", err)
	}
}

func TestUpdateApplyEmptyStringClearsBinding(t *testing.T) {
	trainerID := uuid.New()
	existing := mustModel(t, "2026-03-09", "09:00", "12:30")
	existing.SessionSlotTrainerID = &trainerID

	req := UpdateSessionSlotRequest{
		SessionSlotTrainerID: strPtr(""),
	}
	if err := req.Apply(&existing); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if existing.SessionSlotTrainerID != nil {
		t.Fatal("empty string should clear the trainer binding")
	}
}

func mustModel(t *testing.T, date, start, end string) model.SessionSlotModel {
	t.Helper()
	req := CreateSessionSlotRequest{
		SessionSlotDate:      date,
		SessionSlotStartTime: start,
		SessionSlotEndTime:   end,
	}
	slot, err := req.ToModel(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}
	return slot
}
