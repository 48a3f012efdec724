package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"prisonsphere_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide middleware chain.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID())
	app.Use(RequestTimeout(DefaultRequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
}
