package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusIncarcerated = "Incarcerated"
	StatusReleased     = "Released"
	StatusParole       = "Parole"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

type InmateModel struct {
	InmateID              uuid.UUID `gorm:"column:inmate_id;type:uuid;primaryKey" json:"inmate_id"`
	InmateCode            string    `gorm:"column:inmate_code;type:varchar(20);not null;uniqueIndex:uq_inmates_code" json:"inmate_code"`
	InmateFirstName       string    `gorm:"column:inmate_first_name;type:varchar(100);not null" json:"inmate_first_name"`
	InmateLastName        string    `gorm:"column:inmate_last_name;type:varchar(100);not null" json:"inmate_last_name"`
	InmateDateOfBirth     time.Time `gorm:"column:inmate_date_of_birth;not null" json:"inmate_date_of_birth"`
	InmateGender          string    `gorm:"column:inmate_gender;type:varchar(10);not null" json:"inmate_gender"`
	InmateAdmissionDate   time.Time `gorm:"column:inmate_admission_date;not null;index" json:"inmate_admission_date"`
	InmateSentenceMonths  int       `gorm:"column:inmate_sentence_months;not null" json:"inmate_sentence_months"`
	InmateCrimeDetails    string    `gorm:"column:inmate_crime_details;type:text;not null" json:"inmate_crime_details"`
	InmateAssignedCell    string    `gorm:"column:inmate_assigned_cell;type:varchar(50);not null" json:"inmate_assigned_cell"`
	InmateProfileImageURL *string   `gorm:"column:inmate_profile_image_url;type:text" json:"inmate_profile_image_url,omitempty"`
	InmateStatus          string    `gorm:"column:inmate_status;type:varchar(20);not null;default:'Incarcerated';index" json:"inmate_status"`
	InmateCreatedAt       time.Time `gorm:"column:inmate_created_at;autoCreateTime" json:"inmate_created_at"`
	InmateUpdatedAt       time.Time `gorm:"column:inmate_updated_at;autoUpdateTime" json:"inmate_updated_at"`
}

func (InmateModel) TableName() string {
	return "inmates"
}

func (m *InmateModel) BeforeCreate(tx *gorm.DB) error {
	if m.InmateID == uuid.Nil {
		m.InmateID = uuid.New()
	}
	if m.InmateStatus == "" {
		m.InmateStatus = StatusIncarcerated
	}
	return nil
}

func (m *InmateModel) FullName() string {
	return m.InmateFirstName + " " + m.InmateLastName
}

// InmateSequenceModel holds the last issued number per code prefix.
type InmateSequenceModel struct {
	SequencePrefix string    `gorm:"column:sequence_prefix;type:varchar(10);primaryKey" json:"sequence_prefix"`
	SequenceValue  int       `gorm:"column:sequence_value;not null" json:"sequence_value"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InmateSequenceModel) TableName() string {
	return "inmate_sequences"
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusIncarcerated, StatusReleased, StatusParole:
		return true
	}
	return false
}

func IsValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
