package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/inmates/visitors/controller"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

func VisitorRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewVisitorController(db)
	warden := authMiddleware.WardenOnly("log or edit visits")

	visitors := api.Group("/visitors")
	visitors.Get("/details/:visitorId", ctrl.Get)
	visitors.Put("/details/:visitorId", warden, ctrl.Update)
	visitors.Post("/:inmateId", warden, ctrl.Create)
	visitors.Get("/:inmateId", ctrl.ByInmate)
}
