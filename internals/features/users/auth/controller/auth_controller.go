package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/configs"
	"prisonsphere_backend/internals/features/users/auth/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
	authMiddleware "prisonsphere_backend/internals/middlewares/auth"
)

const accessCookie = "access_token"

type AuthController struct {
	DB     *gorm.DB
	Secret string
	Now    dbtime.Clock
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Secret: configs.JWTSecret, Now: dbtime.SystemClock}
}

type loginRequest struct {
	UserName string `json:"user_name" form:"user_name" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type sessionUser struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	sess, err := service.Login(ac.DB.WithContext(c.UserContext()), req.UserName, req.Password, ac.Secret, ac.Now())
	if err != nil {
		if errors.Is(err, service.ErrMissingSecret) {
			zap.L().Error("login refused: JWT_SECRET missing")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return helper.FromError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    sess.Token,
		HTTPOnly: true,
		Secure:   configs.AppEnv == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  sess.ExpiresAt,
	})
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": sess.Token,
		"expires_at":   sess.ExpiresAt,
		"user": sessionUser{
			ID:       sess.User.ID.String(),
			UserName: sess.User.UserName,
			Role:     sess.User.Role,
		},
	})
}

// GET /api/auth/login reports whether the caller already holds a valid session.
func (ac *AuthController) Session(c *fiber.Ctx) error {
	id, ok := c.Locals("user_id").(string)
	if !ok || id == "" {
		return helper.JsonOK(c, "No active session", fiber.Map{"logged_in": false})
	}
	role, _ := c.Locals("userRole").(string)
	name, _ := c.Locals("user_name").(string)
	return helper.JsonOK(c, "Session active", fiber.Map{
		"logged_in": true,
		"user":      sessionUser{ID: id, UserName: name, Role: role},
	})
}

// GET /api/auth/logout revokes the presented token and clears the cookie.
// Calling it without a token is not an error.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := authMiddleware.ExtractBearerToken(c)
	ttl := time.Duration(configs.BlacklistDays) * 24 * time.Hour
	if err := service.Logout(c.UserContext(), ac.DB, raw, ac.Secret, ac.Now(), ttl); err != nil {
		zap.L().Warn("failed to blacklist token", zap.Error(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    "",
		HTTPOnly: true,
		Path:     "/",
		Expires:  ac.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout successful", nil)
}
