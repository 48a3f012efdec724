package controller

import (
	"github.com/gofiber/fiber/v2"

	"prisonsphere_backend/internals/features/users/auth/repository"
	"prisonsphere_backend/internals/features/users/auth/service"
	helper "prisonsphere_backend/internals/helpers"
)

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	user, err := repository.FindUserByID(ac.DB.WithContext(c.UserContext()), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Profile fetched", sessionUser{
		ID:       user.ID.String(),
		UserName: user.UserName,
		Role:     user.Role,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req changePasswordRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if err := service.ChangePassword(ac.DB.WithContext(c.UserContext()), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
