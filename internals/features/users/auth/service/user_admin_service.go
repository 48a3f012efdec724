package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authHelper "prisonsphere_backend/internals/features/users/auth/helper"
	authRepo "prisonsphere_backend/internals/features/users/auth/repository"
	userModel "prisonsphere_backend/internals/features/users/user/model"
	helper "prisonsphere_backend/internals/helpers"
)

var (
	ErrUserNotFound    = fiber.NewError(fiber.StatusNotFound, "User not found")
	ErrUserExists      = fiber.NewError(fiber.StatusConflict, "User name is already taken")
	ErrInvalidRole     = fiber.NewError(fiber.StatusBadRequest, "Role must be warden or admin")
	ErrWrongPassword   = fiber.NewError(fiber.StatusUnauthorized, "Current password incorrect")
	ErrNothingToUpdate = fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
)

type CreateUserInput struct {
	UserName string
	Password string
	Role     string
	Inactive bool
}

func CreateUser(db *gorm.DB, in CreateUserInput) (*userModel.UserModel, error) {
	name := strings.TrimSpace(in.UserName)
	if err := authHelper.ValidateUserName(name); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := authHelper.ValidatePassword(in.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !userModel.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &userModel.UserModel{UserName: name, Password: hash, Role: role, IsActive: !in.Inactive}
	if err := authRepo.CreateUser(db, user); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserInput carries optional changes; nil fields are left untouched.
type UpdateUserInput struct {
	Password *string
	Role     *string
	Active   *bool
}

func UpdateUser(db *gorm.DB, userName string, in UpdateUserInput) (*userModel.UserModel, error) {
	user, err := findByName(db, userName)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Password != nil {
		if err := authHelper.ValidatePassword(*in.Password); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		hash, err := authHelper.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["user_password"] = hash
	}
	if in.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*in.Role))
		if !userModel.IsValidRole(role) {
			return nil, ErrInvalidRole
		}
		fields["user_role"] = role
	}
	if in.Active != nil {
		fields["user_is_active"] = *in.Active
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := authRepo.UpdateUserFields(db, user.ID, fields); err != nil {
		return nil, err
	}
	return authRepo.FindUserByID(db, user.ID)
}

func DeleteUser(db *gorm.DB, userName string) error {
	user, err := findByName(db, userName)
	if err != nil {
		return err
	}
	return authRepo.DeleteUser(db, user.ID)
}

func ListUsers(db *gorm.DB) ([]userModel.UserModel, error) {
	return authRepo.ListUsers(db)
}

// ChangePassword replaces the caller's password after checking the current one.
func ChangePassword(db *gorm.DB, userID uuid.UUID, current, next string) error {
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := authHelper.CheckPasswordHash(user.Password, current); err != nil {
		return ErrWrongPassword
	}
	if err := authHelper.ValidatePassword(next); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	hash, err := authHelper.HashPassword(next)
	if err != nil {
		return err
	}
	return authRepo.UpdateUserPassword(db, userID, hash)
}

func findByName(db *gorm.DB, userName string) (*userModel.UserModel, error) {
	user, err := authRepo.FindUserByUserName(db, userName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
