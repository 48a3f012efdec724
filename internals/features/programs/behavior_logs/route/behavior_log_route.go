package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/programs/behavior_logs/controller"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

func BehaviorLogRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBehaviorLogController(db)

	logs := api.Group("/behavior-logs")
	logs.Post("/", authMiddleware.WardenOnly("record behavior logs"), ctrl.Upsert)
	logs.Get("/", ctrl.List)
}
