package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoutes "prisonsphere_backend/internals/features/users/auth/route"
)

func AuthPublicRoutes(public fiber.Router, db *gorm.DB) {
	authRoutes.AuthPublicRoutes(public, db)
}

func AuthRoutes(private fiber.Router, db *gorm.DB) {
	authRoutes.AuthRoutes(private, db)
}
