// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/configs"
	helper "prisonsphere_backend/internals/helpers"
	helperAuth "prisonsphere_backend/internals/helpers/auth"
)

const expirySkew = 30 * time.Second

// AuthMiddleware rejects requests without a valid, non-revoked session token and
// stores user_id / userRole / user_name in Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticate(c, db); err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		return c.Next()
	}
}

// authenticate resolves the session behind the request token and fills Locals.
func authenticate(c *fiber.Ctx, db *gorm.DB) error {
	tokenString, err := ExtractBearerToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	revoked, err := helperAuth.IsBlacklisted(c.UserContext(), db, tokenString, configs.JWTSecret, time.Now())
	if err != nil {
		zap.L().Error("blacklist lookup failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}
	if revoked {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is revoked")
	}

	claims, err := ParseToken(tokenString, configs.JWTSecret)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token")
	}
	if err := validateTokenExpiry(claims, expirySkew); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
	}

	userID, err := extractUserID(claims)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
	}

	if err := ensureUserActive(db.WithContext(c.UserContext()), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
		}
		if errors.Is(err, errUserInactive) {
			return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
		}
		zap.L().Error("user lookup failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}

	c.Locals("user_id", userID.String())
	c.Locals("access_token", tokenString)
	storeBasicClaimsToLocals(c, claims)
	return nil
}

// ParseToken verifies an HS256 token and returns its claims. Expiry is checked
// separately so a small clock skew can be tolerated.
func ParseToken(raw, secret string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, errors.New("missing jwt secret")
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
