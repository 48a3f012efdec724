package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityRoutes "prisonsphere_backend/internals/features/programs/activity_logs/route"
	behaviorRoutes "prisonsphere_backend/internals/features/programs/behavior_logs/route"
	workRoutes "prisonsphere_backend/internals/features/programs/work_programs/route"
)

func ProgramRoutes(private fiber.Router, db *gorm.DB) {
	workRoutes.WorkProgramRoutes(private, db)
	behaviorRoutes.BehaviorLogRoutes(private, db)
	activityRoutes.ActivityLogRoutes(private, db)
}
