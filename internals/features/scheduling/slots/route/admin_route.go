// file: internals/features/scheduling/slots/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctl "formaplan_backend/internals/features/scheduling/slots/controller"
)

// SlotAdminRoutes mounts the staff-facing slot endpoints on an already
// authenticated group.
func SlotAdminRoutes(admin fiber.Router, db *gorm.DB) {
	v := validator.New()
	slotCtl := ctl.New(db, v)

	// per-session slot management
	sessions := admin.Group("/sessions/:session_id")
	sessions.Get("/slots", slotCtl.ListBySession)
	sessions.Post("/slots", slotCtl.Create)
	sessions.Post("/slots/batch", slotCtl.CreateBatch)
	sessions.Delete("/slots", slotCtl.DeleteBySession)

	// slot-level operations + advisory checks
	slots := admin.Group("/slots")
	slots.Get("/conflicts", slotCtl.CheckConflicts)
	slots.Patch("/:id", slotCtl.Patch)
	slots.Delete("/:id", slotCtl.Delete)

	// weekly calendar (Monday→Sunday window around ?date=)
	admin.Get("/calendar/slots", slotCtl.ListWeek)
}
