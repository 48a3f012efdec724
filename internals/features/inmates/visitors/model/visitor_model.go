package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitorModel struct {
	VisitorID              uuid.UUID `gorm:"column:visitor_id;type:uuid;primaryKey" json:"visitor_id"`
	VisitorInmateID        uuid.UUID `gorm:"column:visitor_inmate_id;type:uuid;not null;index" json:"visitor_inmate_id"`
	VisitorName            string    `gorm:"column:visitor_name;type:varchar(150);not null" json:"visitor_name"`
	VisitorRelationship    string    `gorm:"column:visitor_relationship;type:varchar(50);not null" json:"visitor_relationship"`
	VisitorContactNumber   string    `gorm:"column:visitor_contact_number;type:varchar(30);not null" json:"visitor_contact_number"`
	VisitorVisitAt         time.Time `gorm:"column:visitor_visit_at;not null;index" json:"visitor_visit_at"`
	VisitorDurationMinutes int       `gorm:"column:visitor_duration_minutes;not null" json:"visitor_duration_minutes"`
	VisitorPurpose         string    `gorm:"column:visitor_purpose;type:text;not null" json:"visitor_purpose"`
	VisitorStaffNotes      *string   `gorm:"column:visitor_staff_notes;type:text" json:"visitor_staff_notes,omitempty"`
	VisitorCreatedAt       time.Time `gorm:"column:visitor_created_at;autoCreateTime" json:"visitor_created_at"`
	VisitorUpdatedAt       time.Time `gorm:"column:visitor_updated_at;autoUpdateTime" json:"visitor_updated_at"`
}

func (VisitorModel) TableName() string {
	return "visitors"
}

func (m *VisitorModel) BeforeCreate(tx *gorm.DB) error {
	if m.VisitorID == uuid.Nil {
		m.VisitorID = uuid.New()
	}
	return nil
}
