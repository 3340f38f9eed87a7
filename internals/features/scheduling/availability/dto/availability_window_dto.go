// file: internals/features/scheduling/availability/dto/availability_window_dto.go
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "formaplan_backend/internals/features/scheduling/availability/model"
)

var ErrEndNotAfterStart = errors.New("end_time must be after start_time")

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseTimeOfDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CreateAvailabilityWindowRequest struct {
	TrainerAvailabilityWindowDate      string `json:"trainer_availability_window_date"       validate:"required,datetime=2006-01-02"`
	TrainerAvailabilityWindowStartTime string `json:"trainer_availability_window_start_time" validate:"required"`
	TrainerAvailabilityWindowEndTime   string `json:"trainer_availability_window_end_time"   validate:"required"`

	TrainerAvailabilityWindowKind       *string        `json:"trainer_availability_window_kind" validate:"omitempty,oneof=available unavailable tentative"`
	TrainerAvailabilityWindowRecurrence datatypes.JSON `json:"trainer_availability_window_recurrence" validate:"omitempty"`
	TrainerAvailabilityWindowNote       *string        `json:"trainer_availability_window_note" validate:"omitempty,max=500"`
}

func (r CreateAvailabilityWindowRequest) ToModel(tenantID, trainerID uuid.UUID) (model.TrainerAvailabilityWindowModel, error) {
	date, ok := parseDate(r.TrainerAvailabilityWindowDate)
	if !ok {
		return model.TrainerAvailabilityWindowModel{}, errors.New("invalid trainer_availability_window_date (want YYYY-MM-DD)")
	}
	start, ok := parseTimeOfDay(r.TrainerAvailabilityWindowStartTime)
	if !ok {
		return model.TrainerAvailabilityWindowModel{}, errors.New("invalid trainer_availability_window_start_time (want HH:mm)")
	}
	end, ok := parseTimeOfDay(r.TrainerAvailabilityWindowEndTime)
	if !ok {
		return model.TrainerAvailabilityWindowModel{}, errors.New("invalid trainer_availability_window_end_time (want HH:mm)")
	}
	if !end.After(start) {
		return model.TrainerAvailabilityWindowModel{}, ErrEndNotAfterStart
	}

	kind := model.KindAvailable
	if r.TrainerAvailabilityWindowKind != nil {
		k, ok := model.ParseAvailabilityKind(strings.TrimSpace(*r.TrainerAvailabilityWindowKind))
		if !ok {
			return model.TrainerAvailabilityWindowModel{}, errors.New("invalid trainer_availability_window_kind")
		}
		kind = k
	}

	return model.TrainerAvailabilityWindowModel{
		TrainerAvailabilityWindowTenantID:   tenantID,
		TrainerAvailabilityWindowTrainerID:  trainerID,
		TrainerAvailabilityWindowDate:       date,
		TrainerAvailabilityWindowStartTime:  start,
		TrainerAvailabilityWindowEndTime:    end,
		TrainerAvailabilityWindowKind:       kind,
		TrainerAvailabilityWindowRecurrence: r.TrainerAvailabilityWindowRecurrence,
		TrainerAvailabilityWindowNote:       r.TrainerAvailabilityWindowNote,
	}, nil
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type AvailabilityWindowResponse struct {
	TrainerAvailabilityWindowID        uuid.UUID `json:"trainer_availability_window_id"`
	TrainerAvailabilityWindowTenantID  uuid.UUID `json:"trainer_availability_window_tenant_id"`
	TrainerAvailabilityWindowTrainerID uuid.UUID `json:"trainer_availability_window_trainer_id"`

	TrainerAvailabilityWindowDate      string `json:"trainer_availability_window_date"`
	TrainerAvailabilityWindowStartTime string `json:"trainer_availability_window_start_time"`
	TrainerAvailabilityWindowEndTime   string `json:"trainer_availability_window_end_time"`
	TrainerAvailabilityWindowKind      string `json:"trainer_availability_window_kind"`

	TrainerAvailabilityWindowRecurrence datatypes.JSON `json:"trainer_availability_window_recurrence,omitempty"`
	TrainerAvailabilityWindowNote       *string        `json:"trainer_availability_window_note,omitempty"`

	TrainerAvailabilityWindowCreatedAt time.Time `json:"trainer_availability_window_created_at"`
}

func FromModel(m model.TrainerAvailabilityWindowModel) AvailabilityWindowResponse {
	return AvailabilityWindowResponse{
		TrainerAvailabilityWindowID:         m.TrainerAvailabilityWindowID,
		TrainerAvailabilityWindowTenantID:   m.TrainerAvailabilityWindowTenantID,
		TrainerAvailabilityWindowTrainerID:  m.TrainerAvailabilityWindowTrainerID,
		TrainerAvailabilityWindowDate:       m.TrainerAvailabilityWindowDate.Format("2006-01-02"),
		TrainerAvailabilityWindowStartTime:  m.TrainerAvailabilityWindowStartTime.Format("15:04"),
		TrainerAvailabilityWindowEndTime:    m.TrainerAvailabilityWindowEndTime.Format("15:04"),
		TrainerAvailabilityWindowKind:       string(m.TrainerAvailabilityWindowKind),
		TrainerAvailabilityWindowRecurrence: m.TrainerAvailabilityWindowRecurrence,
		TrainerAvailabilityWindowNote:       m.TrainerAvailabilityWindowNote,
		TrainerAvailabilityWindowCreatedAt:  m.TrainerAvailabilityWindowCreatedAt,
	}
}

func FromModels(list []model.TrainerAvailabilityWindowModel) []AvailabilityWindowResponse {
	out := make([]AvailabilityWindowResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
