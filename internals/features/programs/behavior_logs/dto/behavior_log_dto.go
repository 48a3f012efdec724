package dto

import (
	"time"

	"github.com/google/uuid"

	"prisonsphere_backend/internals/features/programs/behavior_logs/model"
)

type UpsertBehaviorLogRequest struct {
	InmateID        string  `json:"inmate_id" validate:"required,uuid"`
	WorkEthic       int     `json:"work_ethic" validate:"required,min=1,max=5"`
	Cooperation     int     `json:"cooperation" validate:"required,min=1,max=5"`
	IncidentReports *int    `json:"incident_reports" validate:"omitempty,min=0,max=10"`
	SocialSkills    int     `json:"social_skills" validate:"required,min=1,max=5"`
	Notes           *string `json:"notes"`
	LogDate         string  `json:"log_date"`
}

type BehaviorLogResponse struct {
	ID              uuid.UUID `json:"id"`
	InmateRef       uuid.UUID `json:"inmate_ref"`
	EnrollmentRef   uuid.UUID `json:"enrollment_ref"`
	WorkEthic       int       `json:"work_ethic"`
	Cooperation     int       `json:"cooperation"`
	IncidentReports int       `json:"incident_reports"`
	SocialSkills    int       `json:"social_skills"`
	Notes           *string   `json:"notes,omitempty"`
	LogDate         time.Time `json:"log_date"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromModel(m *model.BehaviorLogModel) BehaviorLogResponse {
	return BehaviorLogResponse{
		ID:              m.BehaviorLogID,
		InmateRef:       m.BehaviorLogInmateID,
		EnrollmentRef:   m.BehaviorLogEnrollmentID,
		WorkEthic:       m.BehaviorLogWorkEthic,
		Cooperation:     m.BehaviorLogCooperation,
		IncidentReports: m.BehaviorLogIncidentReports,
		SocialSkills:    m.BehaviorLogSocialSkills,
		Notes:           m.BehaviorLogNotes,
		LogDate:         m.BehaviorLogDate,
		UpdatedAt:       m.BehaviorLogUpdatedAt,
	}
}

func FromModels(list []model.BehaviorLogModel) []BehaviorLogResponse {
	out := make([]BehaviorLogResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
