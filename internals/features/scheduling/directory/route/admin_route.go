// file: internals/features/scheduling/directory/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctl "formaplan_backend/internals/features/scheduling/directory/controller"
)

// DirectoryAdminRoutes mounts the read-only picker endpoints.
func DirectoryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	dirCtl := ctl.New(db)

	admin.Get("/sessions", dirCtl.ListSessions)
	admin.Get("/trainers", dirCtl.ListTrainers)
	admin.Get("/rooms", dirCtl.ListRooms)
}
