// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "prisonsphere_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByUserName(db *gorm.DB, userName string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("LOWER(user_name) = ?", strings.ToLower(strings.TrimSpace(userName))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ListUsers(db *gorm.DB) ([]userModel.UserModel, error) {
	var users []userModel.UserModel
	err := db.Order("user_name ASC").Find(&users).Error
	return users, err
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	active := user.IsActive
	if err := db.Create(user).Error; err != nil {
		return err
	}
	// false is skipped on insert because of the column default
	if !active {
		user.IsActive = false
		return db.Model(user).Update("user_is_active", false).Error
	}
	return nil
}

// UpdateUserFields applies column updates by id. It returns ErrRecordNotFound
// when no row matched.
func UpdateUserFields(db *gorm.DB, userID uuid.UUID, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	res := db.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newHash string) error {
	return UpdateUserFields(db, userID, map[string]any{"user_password": newHash})
}

func DeleteUser(db *gorm.DB, userID uuid.UUID) error {
	res := db.Where("id = ?", userID).Delete(&userModel.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
