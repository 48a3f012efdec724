package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/dashboard/stats/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/cache"
	"prisonsphere_backend/internals/helpers/dbtime"
)

const (
	CacheTTL          = 30 * time.Second
	statsCacheKey     = "dashboard:stats"
	analyticsCacheKey = "dashboard:analytics"
)

type DashboardController struct {
	DB    *gorm.DB
	Cache cache.KV
	Now   dbtime.Clock
}

func NewDashboardController(db *gorm.DB, kv cache.KV) *DashboardController {
	return &DashboardController{DB: db, Cache: kv, Now: dbtime.SystemClock}
}

// GET /api/dashboard/stats
func (ctrl *DashboardController) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var stats service.Stats
	if cache.GetJSON(ctx, ctrl.Cache, statsCacheKey, &stats) {
		return helper.JsonOK(c, "Dashboard stats fetched", stats)
	}

	s, err := service.LoadStats(ctrl.DB.WithContext(ctx), ctrl.Now())
	if err != nil {
		return helper.FromError(c, err)
	}
	cache.SetJSON(ctx, ctrl.Cache, statsCacheKey, s, CacheTTL)
	return helper.JsonOK(c, "Dashboard stats fetched", s)
}

// GET /api/dashboard/analytics
func (ctrl *DashboardController) Analytics(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var analytics service.Analytics
	if cache.GetJSON(ctx, ctrl.Cache, analyticsCacheKey, &analytics) {
		return helper.JsonOK(c, "Dashboard analytics fetched", analytics)
	}

	a, err := service.LoadAnalytics(ctrl.DB.WithContext(ctx), ctrl.Now())
	if err != nil {
		return helper.FromError(c, err)
	}
	cache.SetJSON(ctx, ctrl.Cache, analyticsCacheKey, a, CacheTTL)
	return helper.JsonOK(c, "Dashboard analytics fetched", a)
}
