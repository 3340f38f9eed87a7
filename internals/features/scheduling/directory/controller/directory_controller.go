// file: internals/features/scheduling/directory/controller/directory_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "formaplan_backend/internals/helpers"
	helperAuth "formaplan_backend/internals/helpers/auth"

	m "formaplan_backend/internals/features/scheduling/directory/model"
)

/* =========================
   Selection lists
   ========================= */

// DirectoryController serves the picker endpoints the scheduling UI
// needs: sessions to plan, trainers and rooms to bind. Read-only.
type DirectoryController struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *DirectoryController {
	return &DirectoryController{DB: db}
}

func (ctl *DirectoryController) tenantStaff(c *fiber.Ctx) (uuid.UUID, error) {
	tenantID, err := helperAuth.GetTenantIDFromToken(c)
	if err != nil {
		return uuid.Nil, helper.JsonError(c, http.StatusUnauthorized, "tenant scope not found in token")
	}
	if err := helperAuth.EnsureStaffTenant(c, tenantID); err != nil {
		return uuid.Nil, err
	}
	return tenantID, nil
}

type sessionItem struct {
	TrainingSessionID            uuid.UUID `json:"training_session_id"`
	TrainingSessionName          string    `json:"training_session_name"`
	TrainingSessionDisplayNumber *string   `json:"training_session_display_number,omitempty"`
	TrainingSessionStatus        string    `json:"training_session_status"`
}

func (ctl *DirectoryController) ListSessions(c *fiber.Ctx) error {
	tenantID, err := ctl.tenantStaff(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.TrainingSessionModel{}).
		Where("training_session_tenant_id = ?", tenantID)
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("training_session_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []m.TrainingSessionModel
	if err := q.Order("training_session_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]sessionItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, sessionItem{
			TrainingSessionID:            r.TrainingSessionID,
			TrainingSessionName:          r.TrainingSessionName,
			TrainingSessionDisplayNumber: r.TrainingSessionDisplayNumber,
			TrainingSessionStatus:        r.TrainingSessionStatus,
		})
	}
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

type trainerItem struct {
	TrainerID          uuid.UUID `json:"trainer_id"`
	TrainerDisplayName string    `json:"trainer_display_name"`
}

func (ctl *DirectoryController) ListTrainers(c *fiber.Ctx) error {
	tenantID, err := ctl.tenantStaff(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.TrainerModel{}).
		Where("trainer_tenant_id = ?", tenantID)
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("trainer_display_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []m.TrainerModel
	if err := q.Order("trainer_display_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]trainerItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, trainerItem{TrainerID: r.TrainerID, TrainerDisplayName: r.TrainerDisplayName})
	}
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

type roomItem struct {
	RoomID          uuid.UUID `json:"room_id"`
	RoomDisplayName string    `json:"room_display_name"`
	RoomCapacity    *int      `json:"room_capacity,omitempty"`
}

func (ctl *DirectoryController) ListRooms(c *fiber.Ctx) error {
	tenantID, err := ctl.tenantStaff(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.RoomModel{}).
		Where("room_tenant_id = ?", tenantID)
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("room_display_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []m.RoomModel
	if err := q.Order("room_display_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]roomItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, roomItem{RoomID: r.RoomID, RoomDisplayName: r.RoomDisplayName, RoomCapacity: r.RoomCapacity})
	}
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}
