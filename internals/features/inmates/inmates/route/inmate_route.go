package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/inmates/inmates/controller"
	helperOSS "prisonsphere_backend/internals/helpers/oss"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

// InmateRoutes mounts /inmates on an authenticated router.
func InmateRoutes(api fiber.Router, db *gorm.DB, store helperOSS.ObjectStore) {
	ctrl := controller.NewInmateController(db, store)
	warden := authMiddleware.WardenOnly("manage inmate records")

	inmates := api.Group("/inmates")
	inmates.Get("/next-id", ctrl.NextID)
	inmates.Get("/search", ctrl.Search)
	inmates.Get("/export", ctrl.Export)

	inmates.Post("/", warden, ctrl.Create)
	inmates.Get("/", ctrl.List)
	inmates.Get("/:id", ctrl.Get)
	inmates.Put("/:id", warden, ctrl.Update)
	inmates.Put("/:id/status", warden, ctrl.ChangeStatus)
	inmates.Post("/:id/profile-image", warden, ctrl.UploadProfileImage)
	inmates.Delete("/:id", warden, ctrl.Release)
}
