// file: internals/features/scheduling/slots/repository/session_slot_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "formaplan_backend/internals/features/scheduling/slots/model"
)

// SessionSlotRepository is the time-slot store. Every read and write is
// scoped by tenant id; a foreign-tenant id behaves exactly like a
// missing one (gorm.ErrRecordNotFound), so existence never leaks.
type SessionSlotRepository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *SessionSlotRepository {
	return &SessionSlotRepository{DB: db}
}

func (r *SessionSlotRepository) Create(ctx context.Context, slot *model.SessionSlotModel) error {
	return r.DB.WithContext(ctx).Create(slot).Error
}

func (r *SessionSlotRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.SessionSlotModel, error) {
	var slot model.SessionSlotModel
	err := r.DB.WithContext(ctx).
		Where("session_slot_id = ? AND session_slot_tenant_id = ?", id, tenantID).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Save persists the whole row. Last write wins.
func (r *SessionSlotRepository) Save(ctx context.Context, slot *model.SessionSlotModel) error {
	return r.DB.WithContext(ctx).Save(slot).Error
}

func (r *SessionSlotRepository) ListBySession(ctx context.Context, tenantID, sessionID uuid.UUID) ([]model.SessionSlotModel, error) {
	var slots []model.SessionSlotModel
	err := r.DB.WithContext(ctx).
		Preload("SessionSlotSession").
		Where("session_slot_tenant_id = ? AND session_slot_session_id = ?", tenantID, sessionID).
		Order("session_slot_date ASC, session_slot_start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *SessionSlotRepository) ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]model.SessionSlotModel, error) {
	var slots []model.SessionSlotModel
	err := r.DB.WithContext(ctx).
		Preload("SessionSlotSession").
		Where("session_slot_tenant_id = ?", tenantID).
		Where("session_slot_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("session_slot_date ASC, session_slot_start_time ASC").
		Find(&slots).Error
	return slots, err
}

// Delete soft-deletes one tenant-scoped slot.
func (r *SessionSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("session_slot_id = ?", id).
		Delete(&model.SessionSlotModel{}).Error
}

// DeleteBySession sweeps every slot of a cancelled session. Returns the
// number of rows removed.
func (r *SessionSlotRepository) DeleteBySession(ctx context.Context, tenantID, sessionID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("session_slot_tenant_id = ? AND session_slot_session_id = ?", tenantID, sessionID).
		Delete(&model.SessionSlotModel{})
	return res.RowsAffected, res.Error
}
