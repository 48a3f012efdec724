package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/home/recent_activities/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
)

type RecentActivityController struct {
	DB  *gorm.DB
	Now dbtime.Clock
}

func NewRecentActivityController(db *gorm.DB) *RecentActivityController {
	return &RecentActivityController{DB: db, Now: dbtime.SystemClock}
}

// GET /api/recent-activities
func (ctrl *RecentActivityController) List(c *fiber.Ctx) error {
	items, err := service.List(ctrl.DB.WithContext(c.UserContext()), ctrl.Now())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Recent activities fetched", items, nil)
}
