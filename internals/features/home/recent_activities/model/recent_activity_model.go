package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecentActivityLogModel struct {
	RecentActivityID          uuid.UUID `gorm:"column:recent_activity_id;type:uuid;primaryKey" json:"recent_activity_id"`
	RecentActivityType        string    `gorm:"column:recent_activity_type;type:varchar(50);not null;index:idx_recent_activity_type_updated,priority:1" json:"recent_activity_type"`
	RecentActivityCount       int       `gorm:"column:recent_activity_count;not null;default:1" json:"recent_activity_count"`
	RecentActivityMessage     string    `gorm:"column:recent_activity_message;type:text;not null" json:"recent_activity_message"`
	RecentActivityLastUpdated time.Time `gorm:"column:recent_activity_last_updated;not null;index:idx_recent_activity_type_updated,priority:2" json:"recent_activity_last_updated"`
}

func (RecentActivityLogModel) TableName() string {
	return "recent_activity_logs"
}

func (m *RecentActivityLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.RecentActivityID == uuid.Nil {
		m.RecentActivityID = uuid.New()
	}
	return nil
}

const (
	ActivityInmateRegistered     = "inmate_registered"
	ActivityInmateUpdated        = "inmate_updated"
	ActivityInmateStatusChanged  = "inmate_status_changed"
	ActivityInmateReleased       = "inmate_released"
	ActivityVisitorLogged        = "visitor_logged"
	ActivityVisitorUpdated       = "visitor_updated"
	ActivityParoleSubmitted      = "parole_submitted"
	ActivityParoleApproved       = "parole_approved"
	ActivityParoleDenied         = "parole_denied"
	ActivityWorkProgramAdded     = "work_program_added"
	ActivityWorkProgramEnrolled  = "work_program_enrolled"
	ActivityWorkProgramCompleted = "work_program_completed"
	ActivityBehaviorLogged       = "behavior_logged"
	ActivityActivityLogged       = "activity_logged"
	ActivityReportGenerated      = "report_generated"
)
