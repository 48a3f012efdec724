package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "Active"
	EnrollmentCompleted = "Completed"
)

type WorkProgramModel struct {
	WorkProgramID          uuid.UUID `gorm:"column:work_program_id;type:uuid;primaryKey" json:"work_program_id"`
	WorkProgramName        string    `gorm:"column:work_program_name;type:varchar(100);not null;uniqueIndex:uq_work_programs_name" json:"work_program_name"`
	WorkProgramDescription string    `gorm:"column:work_program_description;type:text;not null" json:"work_program_description"`
	WorkProgramCreatedAt   time.Time `gorm:"column:work_program_created_at;autoCreateTime" json:"work_program_created_at"`
	WorkProgramUpdatedAt   time.Time `gorm:"column:work_program_updated_at;autoUpdateTime" json:"work_program_updated_at"`
}

func (WorkProgramModel) TableName() string {
	return "work_programs"
}

func (m *WorkProgramModel) BeforeCreate(tx *gorm.DB) error {
	if m.WorkProgramID == uuid.Nil {
		m.WorkProgramID = uuid.New()
	}
	return nil
}

// The partial unique index keeps a single Active enrollment per inmate.
type WorkProgramEnrollmentModel struct {
	EnrollmentID                uuid.UUID  `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentInmateID          uuid.UUID  `gorm:"column:enrollment_inmate_id;type:uuid;not null;index;uniqueIndex:uq_enrollments_one_active,where:enrollment_status = 'Active'" json:"enrollment_inmate_id"`
	EnrollmentWorkProgramID     uuid.UUID  `gorm:"column:enrollment_work_program_id;type:uuid;not null;index" json:"enrollment_work_program_id"`
	EnrollmentStartDate         time.Time  `gorm:"column:enrollment_start_date;not null" json:"enrollment_start_date"`
	EnrollmentEndDate           time.Time  `gorm:"column:enrollment_end_date;not null;index" json:"enrollment_end_date"`
	EnrollmentCompletionDate    *time.Time `gorm:"column:enrollment_completion_date" json:"enrollment_completion_date,omitempty"`
	EnrollmentStatus            string     `gorm:"column:enrollment_status;type:varchar(20);not null;default:'Active';index" json:"enrollment_status"`
	EnrollmentPerformanceRating *int       `gorm:"column:enrollment_performance_rating" json:"enrollment_performance_rating,omitempty"`
	EnrollmentCreatedAt         time.Time  `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt         time.Time  `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`

	WorkProgram *WorkProgramModel `gorm:"foreignKey:EnrollmentWorkProgramID;references:WorkProgramID" json:"work_program,omitempty"`
}

func (WorkProgramEnrollmentModel) TableName() string {
	return "work_program_enrollments"
}

func (m *WorkProgramEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	if m.EnrollmentStatus == "" {
		m.EnrollmentStatus = EnrollmentActive
	}
	return nil
}
