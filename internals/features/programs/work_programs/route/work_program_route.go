package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/programs/work_programs/controller"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

func WorkProgramRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewWorkProgramController(db)
	warden := authMiddleware.WardenOnly("manage work programs")

	wp := api.Group("/work-programs")
	wp.Get("/", ctrl.ListPrograms)
	wp.Post("/", warden, ctrl.CreateProgram)
	wp.Post("/enroll", warden, ctrl.Enroll)
	wp.Get("/enrollments", ctrl.ListEnrollments)
	wp.Get("/enrollments/inmate/:inmateId", ctrl.EnrollmentsByInmate)
	wp.Get("/enrollments/:id", ctrl.GetEnrollment)
}
