// file: internals/features/scheduling/availability/route/availability_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctl "formaplan_backend/internals/features/scheduling/availability/controller"
)

// AvailabilityTrainerRoutes: trainers manage their own ledger.
func AvailabilityTrainerRoutes(trainer fiber.Router, db *gorm.DB) {
	availCtl := ctl.New(db, validator.New())

	grp := trainer.Group("/availability")
	grp.Get("/", availCtl.ListMine)
	grp.Post("/", availCtl.Create)
	grp.Delete("/:id", availCtl.Delete)
}

// AvailabilityAdminRoutes: staff read any trainer's ledger while
// placing slots.
func AvailabilityAdminRoutes(admin fiber.Router, db *gorm.DB) {
	availCtl := ctl.New(db, validator.New())

	admin.Get("/trainers/:trainer_id/availability", availCtl.ListByTrainer)
}
