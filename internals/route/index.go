// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/cache"
	helperOSS "prisonsphere_backend/internals/helpers/oss"
	middlewares "prisonsphere_backend/internals/middlewares"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
	routeDetails "prisonsphere_backend/internals/route/details"
)

var startTime = time.Now()

// privatePrefixes need a session. Public routes under the same prefix (e.g.
// /paroles/upcoming) are mounted first and answer before the guard runs.
var privatePrefixes = []string{
	"/auth/me",
	"/auth/change-password",
	"/inmates",
	"/visitors",
	"/paroles",
	"/work-programs",
	"/behavior-logs",
	"/activity-logs",
	"/recent-activities",
	"/dashboard",
	"/reports",
}

// Deps are the shared collaborators handed to feature routes. Store and Cache
// may be nil.
type Deps struct {
	DB    *gorm.DB
	Store helperOSS.ObjectStore
	Cache cache.KV
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()
	db := deps.DB

	BaseRoutes(app, db)

	api := app.Group("/api", middlewares.GlobalRateLimiter())

	// ===================== PUBLIC =====================
	zap.L().Info("mounting public routes")
	routeDetails.AuthPublicRoutes(api, db)
	routeDetails.InmatePublicRoutes(api, db)

	// ===================== PRIVATE =====================
	zap.L().Info("mounting private routes")
	private := app.Group("/api")
	auth := authMiddleware.AuthMiddleware(db)
	for _, prefix := range privatePrefixes {
		private.Use(prefix, auth)
	}

	routeDetails.AuthRoutes(private, db)
	routeDetails.InmateRoutes(private, db, deps.Store)
	routeDetails.ProgramRoutes(private, db)
	routeDetails.HomeRoutes(private, db, deps.Cache)

	api.Use(func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusNotFound, "Route not found")
	})
}
