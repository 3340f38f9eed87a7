// file: internals/features/scheduling/availability/model/availability_window_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Availability kinds
   ========================= */

type AvailabilityKind string

const (
	KindAvailable   AvailabilityKind = "available"
	KindUnavailable AvailabilityKind = "unavailable"
	KindTentative   AvailabilityKind = "tentative"
)

func ParseAvailabilityKind(s string) (AvailabilityKind, bool) {
	switch AvailabilityKind(s) {
	case KindAvailable, KindUnavailable, KindTentative:
		return AvailabilityKind(s), true
	}
	return "", false
}

/* =========================
   Model
   ========================= */

// TrainerAvailabilityWindowModel is a declared window on a trainer's
// calendar. Purely advisory: scheduling never blocks on it.
type TrainerAvailabilityWindowModel struct {
	TrainerAvailabilityWindowID       uuid.UUID `gorm:"column:trainer_availability_window_id;type:uuid;primaryKey" json:"trainer_availability_window_id"`
	TrainerAvailabilityWindowTenantID uuid.UUID `gorm:"column:trainer_availability_window_tenant_id;type:uuid;not null;index" json:"trainer_availability_window_tenant_id"`

	TrainerAvailabilityWindowTrainerID uuid.UUID `gorm:"column:trainer_availability_window_trainer_id;type:uuid;not null;index" json:"trainer_availability_window_trainer_id"`

	TrainerAvailabilityWindowDate      time.Time `gorm:"column:trainer_availability_window_date;type:date;not null" json:"trainer_availability_window_date"`
	TrainerAvailabilityWindowStartTime time.Time `gorm:"column:trainer_availability_window_start_time;type:time;not null" json:"trainer_availability_window_start_time"`
	TrainerAvailabilityWindowEndTime   time.Time `gorm:"column:trainer_availability_window_end_time;type:time;not null" json:"trainer_availability_window_end_time"`

	TrainerAvailabilityWindowKind AvailabilityKind `gorm:"column:trainer_availability_window_kind;type:availability_kind_enum;not null;default:available" json:"trainer_availability_window_kind"`

	// Recurrence is an opaque rule blob ({"freq":"weekly","until":...});
	// expansion happens client-side.
	TrainerAvailabilityWindowRecurrence datatypes.JSON `gorm:"column:trainer_availability_window_recurrence;type:jsonb" json:"trainer_availability_window_recurrence,omitempty"`

	TrainerAvailabilityWindowNote *string `gorm:"column:trainer_availability_window_note" json:"trainer_availability_window_note,omitempty"`

	TrainerAvailabilityWindowCreatedAt time.Time      `gorm:"column:trainer_availability_window_created_at;autoCreateTime" json:"trainer_availability_window_created_at"`
	TrainerAvailabilityWindowUpdatedAt time.Time      `gorm:"column:trainer_availability_window_updated_at;autoUpdateTime" json:"trainer_availability_window_updated_at"`
	TrainerAvailabilityWindowDeletedAt gorm.DeletedAt `gorm:"column:trainer_availability_window_deleted_at;index" json:"-"`
}

func (TrainerAvailabilityWindowModel) TableName() string {
	return "trainer_availability_windows"
}

func (m *TrainerAvailabilityWindowModel) BeforeCreate(tx *gorm.DB) error {
	if m.TrainerAvailabilityWindowID == uuid.Nil {
		m.TrainerAvailabilityWindowID = uuid.New()
	}
	return nil
}
