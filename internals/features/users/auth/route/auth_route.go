package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/users/auth/controller"
	rateLimiter "prisonsphere_backend/internals/middlewares"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

// AuthPublicRoutes mounts the routes reachable without a session.
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	auth.Get("/login", authMiddleware.OptionalAuth(db), ctrl.Session)
	auth.Get("/logout", ctrl.Logout)
}

// AuthRoutes mounts the session-bound account routes.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Get("/me", ctrl.Me)
	auth.Post("/change-password", ctrl.ChangePassword)
}
