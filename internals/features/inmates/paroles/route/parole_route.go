package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/inmates/paroles/controller"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

// ParolePublicRoutes exposes the hearing calendar without a session.
func ParolePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewParoleController(db)
	api.Get("/paroles/upcoming", ctrl.Upcoming)
}

func ParoleRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewParoleController(db)
	warden := authMiddleware.WardenOnly("manage parole applications")

	paroles := api.Group("/paroles")
	paroles.Post("/", warden, ctrl.Create)
	paroles.Get("/", ctrl.List)
	paroles.Get("/inmate/:inmateId", ctrl.ByInmate)
	paroles.Get("/:id", ctrl.Get)
	paroles.Put("/:id", warden, ctrl.Decide)
}
