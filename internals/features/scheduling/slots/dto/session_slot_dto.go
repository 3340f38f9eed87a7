// file: internals/features/scheduling/slots/dto/session_slot_dto.go
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	model "formaplan_backend/internals/features/scheduling/slots/model"
)

/* =========================================================
   Helpers
   ========================================================= */

var ErrEndNotAfterStart = errors.New("end_time must be after start_time")

func ParseDateYYYYMMDD(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseTimeOfDay accepts HH:mm or HH:mm:ss.
func ParseTimeOfDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func uuidPtr(s *string) (*uuid.UUID, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, true
	}
	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return nil, false
	}
	return &id, true
}

func timePtrOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

/* =========================================================
   1) REQUESTS
   ========================================================= */

// Create: tenant_id and session_id are forced by the controller.
type CreateSessionSlotRequest struct {
	SessionSlotDate      string `json:"session_slot_date"       validate:"required,datetime=2006-01-02"`
	SessionSlotStartTime string `json:"session_slot_start_time" validate:"required"`
	SessionSlotEndTime   string `json:"session_slot_end_time"   validate:"required"`

	SessionSlotDeliveryMode *string `json:"session_slot_delivery_mode" validate:"omitempty,oneof=on_site remote e_learning internship"`

	SessionSlotTrainerID *string `json:"session_slot_trainer_id" validate:"omitempty,uuid"`
	SessionSlotRoomID    *string `json:"session_slot_room_id"    validate:"omitempty,uuid"`
}

func (r CreateSessionSlotRequest) ToModel(tenantID, sessionID uuid.UUID) (model.SessionSlotModel, error) {
	date, ok := ParseDateYYYYMMDD(r.SessionSlotDate)
	if !ok {
		return model.SessionSlotModel{}, errors.New("invalid session_slot_date (want YYYY-MM-DD)")
	}
	start, ok := ParseTimeOfDay(r.SessionSlotStartTime)
	if !ok {
		return model.SessionSlotModel{}, errors.New("invalid session_slot_start_time (want HH:mm)")
	}
	end, ok := ParseTimeOfDay(r.SessionSlotEndTime)
	if !ok {
		return model.SessionSlotModel{}, errors.New("invalid session_slot_end_time (want HH:mm)")
	}
	if !end.After(start) {
		return model.SessionSlotModel{}, ErrEndNotAfterStart
	}

	mode := model.DeliveryOnSite
	if r.SessionSlotDeliveryMode != nil {
		if m, ok := model.ParseDeliveryMode(strings.TrimSpace(*r.SessionSlotDeliveryMode)); ok {
			mode = m
		}
	}

	trainerID, ok := uuidPtr(r.SessionSlotTrainerID)
	if !ok {
		return model.SessionSlotModel{}, errors.New("invalid session_slot_trainer_id")
	}
	roomID, ok := uuidPtr(r.SessionSlotRoomID)
	if !ok {
		return model.SessionSlotModel{}, errors.New("invalid session_slot_room_id")
	}

	return model.SessionSlotModel{
		// PK in BeforeCreate
		SessionSlotTenantID:     tenantID,
		SessionSlotSessionID:    sessionID,
		SessionSlotDate:         date,
		SessionSlotStartTime:    start,
		SessionSlotEndTime:      end,
		SessionSlotDeliveryMode: mode,
		SessionSlotTrainerID:    trainerID,
		SessionSlotRoomID:       roomID,
	}, nil
}

// Update (partial). Last write wins, no optimistic versioning.
type UpdateSessionSlotRequest struct {
	SessionSlotDate         *string `json:"session_slot_date"          validate:"omitempty,datetime=2006-01-02"`
	SessionSlotStartTime    *string `json:"session_slot_start_time"    validate:"omitempty"`
	SessionSlotEndTime      *string `json:"session_slot_end_time"      validate:"omitempty"`
	SessionSlotDeliveryMode *string `json:"session_slot_delivery_mode" validate:"omitempty,oneof=on_site remote e_learning internship"`
	SessionSlotTrainerID    *string `json:"session_slot_trainer_id"    validate:"omitempty"`
	SessionSlotRoomID       *string `json:"session_slot_room_id"       validate:"omitempty"`
}

func (r UpdateSessionSlotRequest) Apply(m *model.SessionSlotModel) error {
	if r.SessionSlotDate != nil {
		t, ok := ParseDateYYYYMMDD(*r.SessionSlotDate)
		if !ok {
			return errors.New("invalid session_slot_date (want YYYY-MM-DD)")
		}
		m.SessionSlotDate = t
	}
	if r.SessionSlotStartTime != nil {
		t, ok := ParseTimeOfDay(*r.SessionSlotStartTime)
		if !ok {
			return errors.New("invalid session_slot_start_time (want HH:mm)")
		}
		m.SessionSlotStartTime = t
	}
	if r.SessionSlotEndTime != nil {
		t, ok := ParseTimeOfDay(*r.SessionSlotEndTime)
		if !ok {
			return errors.New("invalid session_slot_end_time (want HH:mm)")
		}
		m.SessionSlotEndTime = t
	}
	if !m.SessionSlotEndTime.After(m.SessionSlotStartTime) {
		return ErrEndNotAfterStart
	}
	if r.SessionSlotDeliveryMode != nil {
		mode, ok := model.ParseDeliveryMode(strings.TrimSpace(*r.SessionSlotDeliveryMode))
		if !ok {
			return errors.New("invalid session_slot_delivery_mode")
		}
		m.SessionSlotDeliveryMode = mode
	}
	// Empty string clears the resource binding.
	if r.SessionSlotTrainerID != nil {
		id, ok := uuidPtr(r.SessionSlotTrainerID)
		if !ok {
			return errors.New("invalid session_slot_trainer_id")
		}
		m.SessionSlotTrainerID = id
	}
	if r.SessionSlotRoomID != nil {
		id, ok := uuidPtr(r.SessionSlotRoomID)
		if !ok {
			return errors.New("invalid session_slot_room_id")
		}
		m.SessionSlotRoomID = id
	}
	return nil
}

/* =========================================================
   2) BATCH (preset modes)
   ========================================================= */

type CreateSessionSlotsBatchRequest struct {
	SessionSlotMode string `json:"session_slot_mode" validate:"required,oneof=morning afternoon full_day custom"`

	SessionSlotDate      string  `json:"session_slot_date"       validate:"required,datetime=2006-01-02"`
	SessionSlotStartTime *string `json:"session_slot_start_time" validate:"omitempty"` // custom only
	SessionSlotEndTime   *string `json:"session_slot_end_time"   validate:"omitempty"` // custom only

	SessionSlotDeliveryMode *string `json:"session_slot_delivery_mode" validate:"omitempty,oneof=on_site remote e_learning internship"`
	SessionSlotTrainerID    *string `json:"session_slot_trainer_id"    validate:"omitempty,uuid"`
	SessionSlotRoomID       *string `json:"session_slot_room_id"       validate:"omitempty,uuid"`
}

/* =========================================================
   3) RESPONSES
   ========================================================= */

type SessionSlotResponse struct {
	SessionSlotID       uuid.UUID `json:"session_slot_id"`
	SessionSlotTenantID uuid.UUID `json:"session_slot_tenant_id"`

	SessionSlotSessionID uuid.UUID `json:"session_slot_session_id"`
	SessionName          string    `json:"session_name,omitempty"`

	SessionSlotDate         string `json:"session_slot_date"`
	SessionSlotStartTime    string `json:"session_slot_start_time"`
	SessionSlotEndTime      string `json:"session_slot_end_time"`
	SessionSlotDeliveryMode string `json:"session_slot_delivery_mode"`

	SessionSlotTrainerID *uuid.UUID `json:"session_slot_trainer_id,omitempty"`
	SessionSlotRoomID    *uuid.UUID `json:"session_slot_room_id,omitempty"`

	SessionSlotCreatedAt time.Time  `json:"session_slot_created_at"`
	SessionSlotUpdatedAt *time.Time `json:"session_slot_updated_at,omitempty"`
}

// Partial-success shape for batch creates: callers reconcile from
// succeeded + error instead of assuming all-or-nothing.
type SessionSlotsBatchResponse struct {
	Succeeded []SessionSlotResponse `json:"succeeded"`
	Error     *string               `json:"error,omitempty"`
}

/* =========================================================
   4) MAPPERS
   ========================================================= */

func FromModel(m model.SessionSlotModel) SessionSlotResponse {
	resp := SessionSlotResponse{
		SessionSlotID:           m.SessionSlotID,
		SessionSlotTenantID:     m.SessionSlotTenantID,
		SessionSlotSessionID:    m.SessionSlotSessionID,
		SessionSlotDate:         m.SessionSlotDate.Format("2006-01-02"),
		SessionSlotStartTime:    m.SessionSlotStartTime.Format("15:04"),
		SessionSlotEndTime:      m.SessionSlotEndTime.Format("15:04"),
		SessionSlotDeliveryMode: string(m.SessionSlotDeliveryMode),
		SessionSlotTrainerID:    m.SessionSlotTrainerID,
		SessionSlotRoomID:       m.SessionSlotRoomID,
		SessionSlotCreatedAt:    m.SessionSlotCreatedAt,
		SessionSlotUpdatedAt:    timePtrOrNil(m.SessionSlotUpdatedAt),
	}
	if m.SessionSlotSession != nil {
		resp.SessionName = m.SessionSlotSession.TrainingSessionName
	}
	return resp
}

func FromModels(list []model.SessionSlotModel) []SessionSlotResponse {
	out := make([]SessionSlotResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
