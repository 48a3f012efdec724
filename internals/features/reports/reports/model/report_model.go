package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ReportTypeInmateInfo  = "inmate_info"
	ReportTypeRehabStatus = "rehab_status"
)

// Reports are archived snapshots; rows are never updated.
type ReportModel struct {
	ReportID        uuid.UUID      `gorm:"column:report_id;type:uuid;primaryKey" json:"report_id"`
	ReportTitle     string         `gorm:"column:report_title;type:varchar(200);not null" json:"report_title"`
	ReportType      string         `gorm:"column:report_type;type:varchar(30);not null;index" json:"report_type"`
	ReportInmateID  uuid.UUID      `gorm:"column:report_inmate_id;type:uuid;not null;index" json:"report_inmate_id"`
	ReportDetails   datatypes.JSON `gorm:"column:report_details" json:"report_details"`
	ReportCreatedBy uuid.UUID      `gorm:"column:report_created_by;type:uuid;not null" json:"report_created_by"`
	ReportCreatedAt time.Time      `gorm:"column:report_created_at;autoCreateTime" json:"report_created_at"`
}

func (ReportModel) TableName() string {
	return "reports"
}

func (m *ReportModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReportID == uuid.Nil {
		m.ReportID = uuid.New()
	}
	return nil
}
