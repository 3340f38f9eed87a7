// file: internals/features/scheduling/slots/controller/conflict_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	d "formaplan_backend/internals/features/scheduling/slots/dto"
	svc "formaplan_backend/internals/features/scheduling/slots/service"
	helper "formaplan_backend/internals/helpers"
)

// CheckConflicts answers "who else holds this trainer/room in this
// window?". Read-only and advisory: an empty list is the normal answer,
// a non-empty one is information, never a veto.
//
// GET /slots/conflicts?date=&start=&end=&trainer_id=&room_id=&exclude_id=
func (ctl *SessionSlotController) CheckConflicts(c *fiber.Ctx) error {
	tenantID, err := requireStaff(c)
	if err != nil {
		return err
	}

	date, ok := d.ParseDateYYYYMMDD(c.Query("date"))
	if !ok {
		return helper.JsonError(c, http.StatusBadRequest, "invalid date (want YYYY-MM-DD)")
	}
	start, ok := d.ParseTimeOfDay(c.Query("start"))
	if !ok {
		return helper.JsonError(c, http.StatusBadRequest, "invalid start (want HH:mm)")
	}
	end, ok := d.ParseTimeOfDay(c.Query("end"))
	if !ok {
		return helper.JsonError(c, http.StatusBadRequest, "invalid end (want HH:mm)")
	}
	if !end.After(start) {
		return helper.JsonError(c, http.StatusBadRequest, d.ErrEndNotAfterStart.Error())
	}

	q := svc.ConflictQuery{Date: date, Start: start, End: end}

	if v := strings.TrimSpace(c.Query("trainer_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid trainer_id")
		}
		q.TrainerID = &id
	}
	if v := strings.TrimSpace(c.Query("room_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid room_id")
		}
		q.RoomID = &id
	}
	if v := strings.TrimSpace(c.Query("exclude_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid exclude_id")
		}
		q.ExcludeID = &id
	}

	conflicts, err := ctl.Detector.Check(c.UserContext(), tenantID, q)
	if err != nil {
		return writePGError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"conflicts": conflicts})
}
