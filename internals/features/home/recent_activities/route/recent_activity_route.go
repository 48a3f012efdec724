package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/home/recent_activities/controller"
)

func RecentActivityRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRecentActivityController(db)
	r.Get("/recent-activities", ctrl.List)
}
