// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"formaplan_backend/internals/configs"
	authmw "formaplan_backend/internals/middlewares/auth"

	availabilityRoute "formaplan_backend/internals/features/scheduling/availability/route"
	directoryRoute "formaplan_backend/internals/features/scheduling/directory/route"
	slotRoute "formaplan_backend/internals/features/scheduling/slots/route"
)

// SetupRoutes wires the two authenticated surfaces:
//
//	/api/a — staff back-office (slot planning, pickers, ledgers)
//	/api/t — trainer self-service (own availability)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	jwt := authmw.AuthJWT(authmw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	api := app.Group("/api")

	admin := api.Group("/a", jwt)
	directoryRoute.DirectoryAdminRoutes(admin, db)
	slotRoute.SlotAdminRoutes(admin, db)
	availabilityRoute.AvailabilityAdminRoutes(admin, db)

	trainer := api.Group("/t", jwt)
	availabilityRoute.AvailabilityTrainerRoutes(trainer, db)

	log.Println("✅ Routes mounted: /api/a (staff), /api/t (trainer)")
}
