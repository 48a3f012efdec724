package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
)

const (
	ParolePending  = "Pending"
	ParoleApproved = "Approved"
	ParoleDenied   = "Denied"
)

type ParoleModel struct {
	ParoleID              uuid.UUID  `gorm:"column:parole_id;type:uuid;primaryKey" json:"parole_id"`
	ParoleInmateID        uuid.UUID  `gorm:"column:parole_inmate_id;type:uuid;not null;index" json:"parole_inmate_id"`
	ParoleApplicationDate time.Time  `gorm:"column:parole_application_date;not null" json:"parole_application_date"`
	ParoleHearingDate     time.Time  `gorm:"column:parole_hearing_date;not null;index" json:"parole_hearing_date"`
	ParoleStatus          string     `gorm:"column:parole_status;type:varchar(20);not null;default:'Pending';index" json:"parole_status"`
	ParoleDecisionNotes   *string    `gorm:"column:parole_decision_notes;type:text" json:"parole_decision_notes,omitempty"`
	ParoleDecidedAt       *time.Time `gorm:"column:parole_decided_at" json:"parole_decided_at,omitempty"`
	ParoleDecidedBy       *uuid.UUID `gorm:"column:parole_decided_by;type:uuid" json:"parole_decided_by,omitempty"`
	ParoleCreatedAt       time.Time  `gorm:"column:parole_created_at;autoCreateTime" json:"parole_created_at"`
	ParoleUpdatedAt       time.Time  `gorm:"column:parole_updated_at;autoUpdateTime" json:"parole_updated_at"`

	Inmate *inmateModel.InmateModel `gorm:"foreignKey:ParoleInmateID;references:InmateID" json:"inmate,omitempty"`
}

func (ParoleModel) TableName() string {
	return "paroles"
}

func (m *ParoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParoleID == uuid.Nil {
		m.ParoleID = uuid.New()
	}
	if m.ParoleStatus == "" {
		m.ParoleStatus = ParolePending
	}
	return nil
}

func (m *ParoleModel) IsDecided() bool {
	return m.ParoleStatus == ParoleApproved || m.ParoleStatus == ParoleDenied
}
