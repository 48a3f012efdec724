package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityCounseling    = "Counseling"
	ActivityEducation     = "Education"
	ActivityConflict      = "Conflict"
	ActivityRecreation    = "Recreation"
	ActivityHealthSession = "Health Session"
)

var ActivityTypes = []string{
	ActivityCounseling,
	ActivityEducation,
	ActivityConflict,
	ActivityRecreation,
	ActivityHealthSession,
}

type ActivityLogModel struct {
	ActivityLogID          uuid.UUID `gorm:"column:activity_log_id;type:uuid;primaryKey" json:"activity_log_id"`
	ActivityLogInmateID    uuid.UUID `gorm:"column:activity_log_inmate_id;type:uuid;not null;index" json:"activity_log_inmate_id"`
	ActivityLogType        string    `gorm:"column:activity_log_type;type:varchar(30);not null;index" json:"activity_log_type"`
	ActivityLogDescription string    `gorm:"column:activity_log_description;type:text;not null" json:"activity_log_description"`
	ActivityLogDate        time.Time `gorm:"column:activity_log_date;not null" json:"activity_log_date"`
	ActivityLogCreatedAt   time.Time `gorm:"column:activity_log_created_at;autoCreateTime" json:"activity_log_created_at"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

func (m *ActivityLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ActivityLogID == uuid.Nil {
		m.ActivityLogID = uuid.New()
	}
	return nil
}

func IsValidActivityType(t string) bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}
