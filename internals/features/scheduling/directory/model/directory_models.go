// file: internals/features/scheduling/directory/model/directory_models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Reference-only entities
   ========================= */

// Owned by the wider back-office; this core reads them for labeling,
// selection lists and tenant checks only.

type TrainingSessionModel struct {
	TrainingSessionID            uuid.UUID      `gorm:"type:uuid;primaryKey;column:training_session_id"`
	TrainingSessionTenantID      uuid.UUID      `gorm:"type:uuid;not null;column:training_session_tenant_id;index"`
	TrainingSessionName          string         `gorm:"column:training_session_name;not null"`
	TrainingSessionDisplayNumber *string        `gorm:"column:training_session_display_number"`
	TrainingSessionStatus        string         `gorm:"column:training_session_status;default:'draft';not null"`
	TrainingSessionCreatedAt     time.Time      `gorm:"column:training_session_created_at;autoCreateTime"`
	TrainingSessionUpdatedAt     time.Time      `gorm:"column:training_session_updated_at;autoUpdateTime"`
	TrainingSessionDeletedAt     gorm.DeletedAt `gorm:"column:training_session_deleted_at;index"`
}

func (TrainingSessionModel) TableName() string { return "training_sessions" }

type TrainerModel struct {
	TrainerID          uuid.UUID      `gorm:"type:uuid;primaryKey;column:trainer_id"`
	TrainerTenantID    uuid.UUID      `gorm:"type:uuid;not null;column:trainer_tenant_id;index"`
	TrainerDisplayName string         `gorm:"column:trainer_display_name;not null"`
	TrainerCreatedAt   time.Time      `gorm:"column:trainer_created_at;autoCreateTime"`
	TrainerUpdatedAt   time.Time      `gorm:"column:trainer_updated_at;autoUpdateTime"`
	TrainerDeletedAt   gorm.DeletedAt `gorm:"column:trainer_deleted_at;index"`
}

func (TrainerModel) TableName() string { return "trainers" }

type RoomModel struct {
	RoomID          uuid.UUID      `gorm:"type:uuid;primaryKey;column:room_id"`
	RoomTenantID    uuid.UUID      `gorm:"type:uuid;not null;column:room_tenant_id;index"`
	RoomDisplayName string         `gorm:"column:room_display_name;not null"`
	RoomCapacity    *int           `gorm:"column:room_capacity"`
	RoomCreatedAt   time.Time      `gorm:"column:room_created_at;autoCreateTime"`
	RoomUpdatedAt   time.Time      `gorm:"column:room_updated_at;autoUpdateTime"`
	RoomDeletedAt   gorm.DeletedAt `gorm:"column:room_deleted_at;index"`
}

func (RoomModel) TableName() string { return "rooms" }
