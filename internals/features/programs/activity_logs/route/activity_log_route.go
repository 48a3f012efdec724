package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/programs/activity_logs/controller"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

func ActivityLogRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActivityLogController(db)

	logs := api.Group("/activity-logs")
	logs.Post("/", authMiddleware.WardenOnly("record activity logs"), ctrl.Create)
	logs.Get("/", ctrl.List)
}
