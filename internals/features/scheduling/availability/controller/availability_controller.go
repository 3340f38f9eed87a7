// file: internals/features/scheduling/availability/controller/availability_controller.go
package controller

import (
	"errors"
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

	d "formaplan_backend/internals/features/scheduling/availability/dto"
	m "formaplan_backend/internals/features/scheduling/availability/model"
)

/* =========================
   Controller & Constructor
   ========================= */

type AvailabilityController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AvailabilityController {
	return &AvailabilityController{DB: db, Validate: v}
}

func (ctl *AvailabilityController) validateStruct(c *fiber.Ctx, req any) error {
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

// trainerScope resolves the calling trainer inside their active tenant.
func trainerScope(c *fiber.Ctx) (tenantID, trainerID uuid.UUID, err error) {
	tenantID, err = helperAuth.GetTenantIDFromToken(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, helper.JsonError(c, http.StatusUnauthorized, "tenant scope not found in token")
	}
	if err = helperAuth.EnsureTrainerTenant(c, tenantID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	trainerID, err = helperAuth.GetTrainerIDForTenant(c, tenantID)
	if err != nil {
		return uuid.Nil, uuid.Nil, helper.JsonError(c, http.StatusForbidden, "no trainer record in this tenant")
	}
	return tenantID, trainerID, nil
}

/* =========================
   Trainer self-service
   ========================= */

// Create declares a window on the caller's own calendar. Advisory only:
// slots that contradict it still commit.
func (ctl *AvailabilityController) Create(c *fiber.Ctx) error {
	tenantID, trainerID, err := trainerScope(c)
	if err != nil {
		return err
	}

	var req d.CreateAvailabilityWindowRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.validateStruct(c, req); err != nil {
		return err
	}

	window, err := req.ToModel(tenantID, trainerID)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&window).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Availability window created", d.FromModel(window))
}

// ListMine returns the caller's windows for the week around ?date=
// (default: the current week).
func (ctl *AvailabilityController) ListMine(c *fiber.Ctx) error {
	tenantID, trainerID, err := trainerScope(c)
	if err != nil {
		return err
	}
	return ctl.listWindows(c, tenantID, trainerID)
}

// Delete removes one of the caller's windows. A window in another
// tenant looks absent; a colleague's window in the same tenant is
// explicitly forbidden.
func (ctl *AvailabilityController) Delete(c *fiber.Ctx) error {
	tenantID, trainerID, err := trainerScope(c)
	if err != nil {
		return err
	}

	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid window id")
	}

	var window m.TrainerAvailabilityWindowModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("trainer_availability_window_id = ? AND trainer_availability_window_tenant_id = ?", id, tenantID).
		First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "availability window not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if window.TrainerAvailabilityWindowTrainerID != trainerID {
		return helper.JsonError(c, http.StatusForbidden, "window belongs to another trainer")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(&window).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Availability window deleted", d.FromModel(window))
}

/* =========================
   Staff read-only
   ========================= */

// ListByTrainer lets staff read any trainer's ledger while planning.
func (ctl *AvailabilityController) ListByTrainer(c *fiber.Ctx) error {
	tenantID, err := helperAuth.GetTenantIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "tenant scope not found in token")
	}
	if err := helperAuth.EnsureStaffTenant(c, tenantID); err != nil {
		return err
	}

	trainerID, err := uuid.Parse(strings.TrimSpace(c.Params("trainer_id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid trainer_id")
	}
	return ctl.listWindows(c, tenantID, trainerID)
}

/* =========================
   Shared listing
   ========================= */

func (ctl *AvailabilityController) listWindows(c *fiber.Ctx, tenantID, trainerID uuid.UUID) error {
	anchor := dbtime.NowIn(configs.AppTimezone)
	if q := strings.TrimSpace(c.Query("date")); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid date (want YYYY-MM-DD)")
		}
		anchor = t
	}
	weekStart, weekEnd := dbtime.WeekWindow(anchor)

	var windows []m.TrainerAvailabilityWindowModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("trainer_availability_window_tenant_id = ? AND trainer_availability_window_trainer_id = ?", tenantID, trainerID).
		Where("trainer_availability_window_date BETWEEN ? AND ?",
			weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02")).
		Order("trainer_availability_window_date ASC, trainer_availability_window_start_time ASC").
		Find(&windows).Error
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"week_start": weekStart.Format("2006-01-02"),
		"week_end":   weekEnd.Format("2006-01-02"),
		"windows":    d.FromModels(windows),
	})
}
