package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OptionalAuth fills the same Locals as AuthMiddleware when a valid session is
// present and otherwise lets the request through anonymously.
func OptionalAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := ExtractBearerToken(c); err != nil {
			return c.Next()
		}
		if err := authenticate(c, db); err != nil {
			zap.L().Debug("optional auth: continuing anonymous", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Next()
	}
}
