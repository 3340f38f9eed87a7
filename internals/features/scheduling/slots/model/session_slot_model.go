// file: internals/features/scheduling/slots/model/session_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dirmodel "formaplan_backend/internals/features/scheduling/directory/model"
)

/* =========================
   Enum
========================= */

type DeliveryMode string

const (
	DeliveryOnSite     DeliveryMode = "on_site"
	DeliveryRemote     DeliveryMode = "remote"
	DeliveryELearning  DeliveryMode = "e_learning"
	DeliveryInternship DeliveryMode = "internship"
)

/* =========================
   Model: SessionSlotModel
========================= */

// One contiguous time block within a single day, attached to a training
// session, optionally bound to a trainer and/or a room. Overlapping
// bindings are legal; the conflict detector only reports them.
type SessionSlotModel struct {
	// PK
	SessionSlotID uuid.UUID `gorm:"type:uuid;primaryKey;column:session_slot_id"`

	// Tenant
	SessionSlotTenantID uuid.UUID `gorm:"type:uuid;not null;column:session_slot_tenant_id;index"`

	// Owning session
	SessionSlotSessionID uuid.UUID                      `gorm:"type:uuid;not null;column:session_slot_session_id;index"`
	SessionSlotSession   *dirmodel.TrainingSessionModel `gorm:"foreignKey:SessionSlotSessionID;references:TrainingSessionID;constraint:OnDelete:CASCADE"`

	// Day + time-of-day (never spans midnight)
	SessionSlotDate      time.Time `gorm:"column:session_slot_date;type:date;not null"`
	SessionSlotStartTime time.Time `gorm:"column:session_slot_start_time;type:time;not null"`
	SessionSlotEndTime   time.Time `gorm:"column:session_slot_end_time;type:time;not null"`

	SessionSlotDeliveryMode DeliveryMode `gorm:"type:delivery_mode_enum;default:'on_site';not null;column:session_slot_delivery_mode"`

	// Resources — optional
	SessionSlotTrainerID *uuid.UUID             `gorm:"type:uuid;column:session_slot_trainer_id;index"`
	SessionSlotTrainer   *dirmodel.TrainerModel `gorm:"foreignKey:SessionSlotTrainerID;references:TrainerID;constraint:OnDelete:SET NULL"`
	SessionSlotRoomID    *uuid.UUID             `gorm:"type:uuid;column:session_slot_room_id;index"`
	SessionSlotRoom      *dirmodel.RoomModel    `gorm:"foreignKey:SessionSlotRoomID;references:RoomID;constraint:OnDelete:SET NULL"`

	// Timestamps
	SessionSlotCreatedAt time.Time      `gorm:"column:session_slot_created_at;autoCreateTime"`
	SessionSlotUpdatedAt time.Time      `gorm:"column:session_slot_updated_at;autoUpdateTime"`
	SessionSlotDeletedAt gorm.DeletedAt `gorm:"column:session_slot_deleted_at;index"`
}

func (SessionSlotModel) TableName() string { return "session_slots" }

func (s *SessionSlotModel) BeforeCreate(tx *gorm.DB) error {
	if s.SessionSlotID == uuid.Nil {
		s.SessionSlotID = uuid.New()
	}
	return nil
}

func ParseDeliveryMode(s string) (DeliveryMode, bool) {
	switch DeliveryMode(s) {
	case DeliveryOnSite, DeliveryRemote, DeliveryELearning, DeliveryInternship:
		return DeliveryMode(s), true
	}
	return "", false
}
