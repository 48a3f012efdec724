package dto

import (
	"time"

	"github.com/google/uuid"

	"prisonsphere_backend/internals/features/programs/activity_logs/model"
)

type CreateActivityLogRequest struct {
	InmateID     string `json:"inmate_id" validate:"required,uuid"`
	ActivityType string `json:"activity_type" validate:"required"`
	Description  string `json:"description" validate:"required"`
	LogDate      string `json:"log_date"`
}

type ActivityLogResponse struct {
	ID           uuid.UUID `json:"id"`
	InmateRef    uuid.UUID `json:"inmate_ref"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	LogDate      time.Time `json:"log_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromModel(m *model.ActivityLogModel) ActivityLogResponse {
	return ActivityLogResponse{
		ID:           m.ActivityLogID,
		InmateRef:    m.ActivityLogInmateID,
		ActivityType: m.ActivityLogType,
		Description:  m.ActivityLogDescription,
		LogDate:      m.ActivityLogDate,
		CreatedAt:    m.ActivityLogCreatedAt,
	}
}

func FromModels(list []model.ActivityLogModel) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
