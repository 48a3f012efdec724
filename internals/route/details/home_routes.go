package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardRoutes "prisonsphere_backend/internals/features/dashboard/stats/route"
	recentRoutes "prisonsphere_backend/internals/features/home/recent_activities/route"
	reportRoutes "prisonsphere_backend/internals/features/reports/reports/route"
	"prisonsphere_backend/internals/helpers/cache"
)

func HomeRoutes(private fiber.Router, db *gorm.DB, kv cache.KV) {
	dashboardRoutes.DashboardRoutes(private, db, kv)
	recentRoutes.RecentActivityRoutes(private, db)
	reportRoutes.ReportRoutes(private, db)
}
