package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/dashboard/stats/controller"
	"prisonsphere_backend/internals/helpers/cache"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB, kv cache.KV) {
	ctrl := controller.NewDashboardController(db, kv)

	dash := api.Group("/dashboard")
	dash.Get("/stats", ctrl.Stats)
	dash.Get("/analytics", ctrl.Analytics)
}
