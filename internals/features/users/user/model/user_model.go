package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleWarden = "warden"
	RoleAdmin  = "admin"
)

// UserModel is a staff account (warden or admin).
type UserModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserName  string    `gorm:"column:user_name;size:50;not null;uniqueIndex" json:"user_name"`
	Password  string    `gorm:"column:user_password;not null" json:"-"`
	Role      string    `gorm:"column:user_role;type:varchar(20);not null;default:'admin'" json:"role"`
	IsActive  bool      `gorm:"column:user_is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleAdmin
	}
	return nil
}

func IsValidRole(role string) bool {
	return role == RoleWarden || role == RoleAdmin
}
