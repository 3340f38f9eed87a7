// file: internals/features/scheduling/slots/controller/session_slot_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"formaplan_backend/internals/configs"
	helper "formaplan_backend/internals/helpers"
	helperAuth "formaplan_backend/internals/helpers/auth"
	"formaplan_backend/internals/helpers/dbtime"

	availdto "formaplan_backend/internals/features/scheduling/availability/dto"
	availmodel "formaplan_backend/internals/features/scheduling/availability/model"
	dirmodel "formaplan_backend/internals/features/scheduling/directory/model"
	d "formaplan_backend/internals/features/scheduling/slots/dto"
	m "formaplan_backend/internals/features/scheduling/slots/model"
	repo "formaplan_backend/internals/features/scheduling/slots/repository"
	svc "formaplan_backend/internals/features/scheduling/slots/service"
)

/* =========================
   Controller & Constructor
   ========================= */

// SlotStore is the store surface the handlers use. Satisfied by
// *repository.SessionSlotRepository; narrow so handler behavior is
// testable with a scripted fake.
type SlotStore interface {
	Create(ctx context.Context, slot *m.SessionSlotModel) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*m.SessionSlotModel, error)
	Save(ctx context.Context, slot *m.SessionSlotModel) error
	ListBySession(ctx context.Context, tenantID, sessionID uuid.UUID) ([]m.SessionSlotModel, error)
	ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]m.SessionSlotModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySession(ctx context.Context, tenantID, sessionID uuid.UUID) (int64, error)
}

type SessionSlotController struct {
	DB       *gorm.DB
	Validate *validator.Validate

	Repo      SlotStore
	Expander  *svc.PresetExpander
	Committer *svc.BatchCommitter
	Detector  *svc.ConflictDetector
}

func New(db *gorm.DB, v *validator.Validate) *SessionSlotController {
	expander, err := svc.NewPresetExpander(configs.LoadSlotPresets())
	if err != nil {
		log.Fatalf("❌ invalid slot presets: %v", err)
	}
	r := repo.New(db)
	return &SessionSlotController{
		DB:        db,
		Validate:  v,
		Repo:      r,
		Expander:  expander,
		Committer: svc.NewBatchCommitter(r, expander),
		Detector:  svc.NewConflictDetector(db),
	}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

func (ctl *SessionSlotController) validateStruct(c *fiber.Ctx, req any) error {
	if ctl.Validate == nil {
		return nil
	}
	if err := ctl.Validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(map[string][]string, len(ve))
			for _, fe := range ve {
				fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
			}
			return helper.JsonValidationError(c, fields)
		}
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	return nil
}

// requireStaff: tenant scope from token + staff standing in it.
func requireStaff(c *fiber.Ctx) (uuid.UUID, error) {
	tenantID, err := helperAuth.GetTenantIDFromToken(c)
	if err != nil {
		return uuid.Nil, helper.JsonError(c, http.StatusUnauthorized, "tenant scope not found in token")
	}
	if err := helperAuth.EnsureStaffTenant(c, tenantID); err != nil {
		return uuid.Nil, err
	}
	return tenantID, nil
}

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func mapPGError(err error) (int, string) {
	// 23503 = foreign_key_violation, 23505 = unique_violation,
	// 23514 = check_violation (end > start lives in the schema too)
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23503":
			return http.StatusBadRequest, "Referenced row not found (FK violation)."
		case "23505":
			return http.StatusConflict, "Duplicate row (unique violation)."
		case "23514":
			return http.StatusBadRequest, "Time range rejected by the schema (end must be after start)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

func writePGError(c *fiber.Ctx, err error) error {
	code, msg := mapPGError(err)
	return helper.JsonError(c, code, msg)
}

// sessionInTenant fails closed: a foreign-tenant session looks absent.
func (ctl *SessionSlotController) sessionInTenant(c *fiber.Ctx, tenantID, sessionID uuid.UUID) (*dirmodel.TrainingSessionModel, error) {
	var session dirmodel.TrainingSessionModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("training_session_id = ? AND training_session_tenant_id = ?", sessionID, tenantID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, http.StatusNotFound, "session not found")
		}
		return nil, writePGError(c, err)
	}
	return &session, nil
}

// resourcesInTenant checks that supplied trainer/room rows belong to the
// caller's tenant (slot invariant).
func (ctl *SessionSlotController) resourcesInTenant(c *fiber.Ctx, tenantID uuid.UUID, trainerID, roomID *uuid.UUID) error {
	if trainerID != nil {
		var n int64
		if err := ctl.DB.WithContext(c.UserContext()).Model(&dirmodel.TrainerModel{}).
			Where("trainer_id = ? AND trainer_tenant_id = ?", *trainerID, tenantID).
			Count(&n).Error; err != nil {
			return writePGError(c, err)
		}
		if n == 0 {
			return helper.JsonError(c, http.StatusNotFound, "trainer not found")
		}
	}
	if roomID != nil {
		var n int64
		if err := ctl.DB.WithContext(c.UserContext()).Model(&dirmodel.RoomModel{}).
			Where("room_id = ? AND room_tenant_id = ?", *roomID, tenantID).
			Count(&n).Error; err != nil {
			return writePGError(c, err)
		}
		if n == 0 {
			return helper.JsonError(c, http.StatusNotFound, "room not found")
		}
	}
	return nil
}

/*
========================= Create =========================
*/
func (ctl *SessionSlotController) Create(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	sessionID, err := parseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var req d.CreateSessionSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.validateStruct(c, req); err != nil {
		return err
	}

	slot, err := req.ToModel(tenantID, sessionID)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	session, err := ctl.sessionInTenant(c, tenantID, sessionID)
	if err != nil {
		return err
	}
	if err := ctl.resourcesInTenant(c, tenantID, slot.SessionSlotTrainerID, slot.SessionSlotRoomID); err != nil {
		return err
	}

	// Advisory only: availability and conflicts never block the write.
	if err := ctl.Repo.Create(c.UserContext(), &slot); err != nil {
		return writePGError(c, err)
	}
	slot.SessionSlotSession = session

	return helper.JsonCreated(c, "Slot created", d.FromModel(slot))
}

/*
========================= Batch create (presets) =========================
*/
func (ctl *SessionSlotController) CreateBatch(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	sessionID, err := parseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var req d.CreateSessionSlotsBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.validateStruct(c, req); err != nil {
		return err
	}

	mode, ok := svc.ParseSlotMode(strings.TrimSpace(req.SessionSlotMode))
	if !ok {
		return helper.JsonError(c, http.StatusBadRequest, "invalid session_slot_mode")
	}

	var custom *svc.TimeRange
	if mode == svc.ModeCustom {
		if req.SessionSlotStartTime == nil || req.SessionSlotEndTime == nil {
			return helper.JsonError(c, http.StatusBadRequest, svc.ErrCustomRangeRequired.Error())
		}
		start, ok := d.ParseTimeOfDay(*req.SessionSlotStartTime)
		if !ok {
			return helper.JsonError(c, http.StatusBadRequest, "invalid session_slot_start_time (want HH:mm)")
		}
		end, ok := d.ParseTimeOfDay(*req.SessionSlotEndTime)
		if !ok {
			return helper.JsonError(c, http.StatusBadRequest, "invalid session_slot_end_time (want HH:mm)")
		}
		custom = &svc.TimeRange{Start: start, End: end}
	}

	date, ok := d.ParseDateYYYYMMDD(req.SessionSlotDate)
	if !ok {
		return helper.JsonError(c, http.StatusBadRequest, "invalid session_slot_date (want YYYY-MM-DD)")
	}

	deliveryMode := m.DeliveryOnSite
	if req.SessionSlotDeliveryMode != nil {
		if dm, ok := m.ParseDeliveryMode(strings.TrimSpace(*req.SessionSlotDeliveryMode)); ok {
			deliveryMode = dm
		}
	}

	var trainerID, roomID *uuid.UUID
	if req.SessionSlotTrainerID != nil && strings.TrimSpace(*req.SessionSlotTrainerID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.SessionSlotTrainerID))
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid session_slot_trainer_id")
		}
		trainerID = &id
	}
	if req.SessionSlotRoomID != nil && strings.TrimSpace(*req.SessionSlotRoomID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.SessionSlotRoomID))
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid session_slot_room_id")
		}
		roomID = &id
	}

	session, err := ctl.sessionInTenant(c, tenantID, sessionID)
	if err != nil {
		return err
	}
	if err := ctl.resourcesInTenant(c, tenantID, trainerID, roomID); err != nil {
		return err
	}

	base := m.SessionSlotModel{
		SessionSlotTenantID:     tenantID,
		SessionSlotSessionID:    sessionID,
		SessionSlotDate:         date,
		SessionSlotDeliveryMode: deliveryMode,
		SessionSlotTrainerID:    trainerID,
		SessionSlotRoomID:       roomID,
	}

	result := ctl.Committer.Commit(c.UserContext(), base, mode, custom)

	for i := range result.Succeeded {
		result.Succeeded[i].SessionSlotSession = session
	}
	resp := d.SessionSlotsBatchResponse{Succeeded: d.FromModels(result.Succeeded)}
	if result.Err != nil {
		msg := result.Err.Error()
		resp.Error = &msg
		// Partial outcome: report, let the caller reconcile.
		return helper.JsonPartial(c, "batch partially failed", resp)
	}
	return helper.JsonCreated(c, "Slots created", resp)
}

/*
========================= Lists =========================
*/
func (ctl *SessionSlotController) ListBySession(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	sessionID, err := parseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if _, err := ctl.sessionInTenant(c, tenantID, sessionID); err != nil {
		return err
	}

	slots, err := ctl.Repo.ListBySession(c.UserContext(), tenantID, sessionID)
	if err != nil {
		return writePGError(c, err)
	}
	return helper.JsonOK(c, "ok", d.FromModels(slots))
}

// ListWeek bounds the tenant calendar to the week of ?date= (default
// today). With ?trainer_id= the response also carries that trainer's
// availability windows for the same week as planning context.
func (ctl *SessionSlotController) ListWeek(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	anchor := dbtime.NowIn(configs.AppTimezone)
	if q := strings.TrimSpace(c.Query("date")); q != "" {
		t, ok := d.ParseDateYYYYMMDD(q)
		if !ok {
			return helper.JsonError(c, http.StatusBadRequest, "invalid date (want YYYY-MM-DD)")
		}
		anchor = t
	}
	weekStart, weekEnd := dbtime.WeekWindow(anchor)

	slots, err := ctl.Repo.ListByDateRange(c.UserContext(), tenantID, weekStart, weekEnd)
	if err != nil {
		return writePGError(c, err)
	}

	payload := fiber.Map{
		"week_start": weekStart.Format("2006-01-02"),
		"week_end":   weekEnd.Format("2006-01-02"),
		"slots":      d.FromModels(slots),
	}

	if v := strings.TrimSpace(c.Query("trainer_id")); v != "" {
		trainerID, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid trainer_id")
		}
		if err := ctl.resourcesInTenant(c, tenantID, &trainerID, nil); err != nil {
			return err
		}
		var windows []availmodel.TrainerAvailabilityWindowModel
		err = ctl.DB.WithContext(c.UserContext()).
			Where("trainer_availability_window_tenant_id = ? AND trainer_availability_window_trainer_id = ?", tenantID, trainerID).
			Where("trainer_availability_window_date BETWEEN ? AND ?",
				weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02")).
			Order("trainer_availability_window_date ASC, trainer_availability_window_start_time ASC").
			Find(&windows).Error
		if err != nil {
			return writePGError(c, err)
		}
		payload["trainer_availability"] = availdto.FromModels(windows)
	}

	return helper.JsonOK(c, "ok", payload)
}

/*
========================= Patch =========================
*/
func (ctl *SessionSlotController) Patch(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	existing, err := ctl.Repo.GetByID(c.UserContext(), tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "slot not found")
		}
		return writePGError(c, err)
	}

	var req d.UpdateSessionSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.validateStruct(c, req); err != nil {
		return err
	}
	if err := req.Apply(existing); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.resourcesInTenant(c, tenantID, existing.SessionSlotTrainerID, existing.SessionSlotRoomID); err != nil {
		return err
	}

	if err := ctl.Repo.Save(c.UserContext(), existing); err != nil {
		return writePGError(c, err)
	}
	return helper.JsonUpdated(c, "Slot updated", d.FromModel(*existing))
}

/*
========================= Soft Delete =========================
*/
func (ctl *SessionSlotController) Delete(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	existing, err := ctl.Repo.GetByID(c.UserContext(), tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "slot not found")
		}
		return writePGError(c, err)
	}

	if err := ctl.Repo.Delete(c.UserContext(), existing.SessionSlotID); err != nil {
		return writePGError(c, err)
	}
	return helper.JsonDeleted(c, "Slot deleted", d.FromModel(*existing))
}

// DeleteBySession sweeps the slots of a cancelled session.
func (ctl *SessionSlotController) DeleteBySession(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	sessionID, err := parseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if _, err := ctl.sessionInTenant(c, tenantID, sessionID); err != nil {
		return err
	}

	removed, err := ctl.Repo.DeleteBySession(c.UserContext(), tenantID, sessionID)
	if err != nil {
		return writePGError(c, err)
	}
	return helper.JsonDeleted(c, "Session slots deleted", fiber.Map{"removed": removed})
}
