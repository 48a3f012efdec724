package dto

import (
	"time"

	"github.com/google/uuid"

	"prisonsphere_backend/internals/features/programs/scoring"
	"prisonsphere_backend/internals/features/programs/work_programs/model"
)

type CreateWorkProgramRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
}

type EnrollRequest struct {
	InmateID      string `json:"inmate_id" validate:"required,uuid"`
	WorkProgramID string `json:"work_program_id" validate:"required,uuid"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date" validate:"required"`
}

type WorkProgramResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromProgram(m *model.WorkProgramModel) WorkProgramResponse {
	return WorkProgramResponse{
		ID:          m.WorkProgramID,
		Name:        m.WorkProgramName,
		Description: m.WorkProgramDescription,
		CreatedAt:   m.WorkProgramCreatedAt,
	}
}

func FromPrograms(list []model.WorkProgramModel) []WorkProgramResponse {
	out := make([]WorkProgramResponse, 0, len(list))
	for i := range list {
		out = append(out, FromProgram(&list[i]))
	}
	return out
}

type EnrollmentResponse struct {
	ID                uuid.UUID            `json:"id"`
	InmateRef         uuid.UUID            `json:"inmate_ref"`
	WorkProgramRef    uuid.UUID            `json:"work_program_ref"`
	WorkProgram       *WorkProgramResponse `json:"work_program,omitempty"`
	StartDate         time.Time            `json:"start_date"`
	EndDate           time.Time            `json:"end_date"`
	CompletionDate    *time.Time           `json:"completion_date,omitempty"`
	Status            string               `json:"status"`
	PerformanceRating *int                 `json:"performance_rating,omitempty"`
	PerformanceLabel  string               `json:"performance_label,omitempty"`
}

func FromEnrollment(m *model.WorkProgramEnrollmentModel) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:                m.EnrollmentID,
		InmateRef:         m.EnrollmentInmateID,
		WorkProgramRef:    m.EnrollmentWorkProgramID,
		StartDate:         m.EnrollmentStartDate,
		EndDate:           m.EnrollmentEndDate,
		CompletionDate:    m.EnrollmentCompletionDate,
		Status:            m.EnrollmentStatus,
		PerformanceRating: m.EnrollmentPerformanceRating,
	}
	if m.EnrollmentPerformanceRating != nil {
		resp.PerformanceLabel = scoring.PerformanceLabel(*m.EnrollmentPerformanceRating)
	}
	if m.WorkProgram != nil {
		wp := FromProgram(m.WorkProgram)
		resp.WorkProgram = &wp
	}
	return resp
}

func FromEnrollments(list []model.WorkProgramEnrollmentModel) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromEnrollment(&list[i]))
	}
	return out
}
