package auth

import (
	"github.com/gofiber/fiber/v2"

	"prisonsphere_backend/internals/constants"
	helper "prisonsphere_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError allows the request only for the given roles.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

// WardenOnly guards write operations.
func WardenOnly(feature string) fiber.Handler {
	return RoleMiddlewareWithCustomError(constants.WardenOnly, constants.RoleErrorWarden(feature))
}
