package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/reports/reports/controller"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

func ReportRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db)

	reports := api.Group("/reports")
	reports.Get("/", ctrl.List)
	reports.Get("/:id", ctrl.Get)
	reports.Post("/inmate-info/:id", authMiddleware.WardenOnly("generate reports"), ctrl.CreateInmateInfo)
	reports.Post("/rehab-status/:id", authMiddleware.WardenOnly("generate reports"), ctrl.CreateRehabStatus)

	inmates := api.Group("/inmates/report")
	inmates.Get("/:id", ctrl.InmateReport)
	inmates.Get("/:id/pdf/:type", ctrl.InmatePDF)
}
