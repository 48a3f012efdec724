package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One log per (inmate, enrollment); later submissions overwrite the ratings.
type BehaviorLogModel struct {
	BehaviorLogID              uuid.UUID `gorm:"column:behavior_log_id;type:uuid;primaryKey" json:"behavior_log_id"`
	BehaviorLogInmateID        uuid.UUID `gorm:"column:behavior_log_inmate_id;type:uuid;not null;uniqueIndex:uq_behavior_logs_inmate_enrollment,priority:1" json:"behavior_log_inmate_id"`
	BehaviorLogEnrollmentID    uuid.UUID `gorm:"column:behavior_log_enrollment_id;type:uuid;not null;uniqueIndex:uq_behavior_logs_inmate_enrollment,priority:2" json:"behavior_log_enrollment_id"`
	BehaviorLogWorkEthic       int       `gorm:"column:behavior_log_work_ethic;not null" json:"behavior_log_work_ethic"`
	BehaviorLogCooperation     int       `gorm:"column:behavior_log_cooperation;not null" json:"behavior_log_cooperation"`
	BehaviorLogIncidentReports int       `gorm:"column:behavior_log_incident_reports;not null;default:0" json:"behavior_log_incident_reports"`
	BehaviorLogSocialSkills    int       `gorm:"column:behavior_log_social_skills;not null" json:"behavior_log_social_skills"`
	BehaviorLogNotes           *string   `gorm:"column:behavior_log_notes;type:text" json:"behavior_log_notes,omitempty"`
	BehaviorLogDate            time.Time `gorm:"column:behavior_log_date;not null" json:"behavior_log_date"`
	BehaviorLogCreatedAt       time.Time `gorm:"column:behavior_log_created_at;autoCreateTime" json:"behavior_log_created_at"`
	BehaviorLogUpdatedAt       time.Time `gorm:"column:behavior_log_updated_at;autoUpdateTime" json:"behavior_log_updated_at"`
}

func (BehaviorLogModel) TableName() string {
	return "behavior_logs"
}

func (m *BehaviorLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.BehaviorLogID == uuid.Nil {
		m.BehaviorLogID = uuid.New()
	}
	return nil
}
