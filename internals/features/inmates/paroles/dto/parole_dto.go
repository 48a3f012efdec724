package dto

import (
	"time"

	"github.com/google/uuid"

	"prisonsphere_backend/internals/features/inmates/paroles/model"
)

type CreateParoleRequest struct {
	InmateID        string  `json:"inmate_id" validate:"required,uuid"`
	ApplicationDate string  `json:"application_date"`
	HearingDate     string  `json:"hearing_date" validate:"required"`
	Notes           *string `json:"notes"`
}

type DecideParoleRequest struct {
	Status        string  `json:"status" validate:"required,oneof=Approved Denied"`
	DecisionNotes *string `json:"decision_notes"`
}

type ParoleInmate struct {
	ID       uuid.UUID `json:"id"`
	InmateID string    `json:"inmate_id"`
	FullName string    `json:"full_name"`
	Status   string    `json:"status"`
	Cell     string    `json:"assigned_cell"`
}

type ParoleResponse struct {
	ID              uuid.UUID     `json:"id"`
	InmateRef       uuid.UUID     `json:"inmate_ref"`
	Inmate          *ParoleInmate `json:"inmate,omitempty"`
	ApplicationDate time.Time     `json:"application_date"`
	HearingDate     time.Time     `json:"hearing_date"`
	Status          string        `json:"status"`
	DecisionNotes   *string       `json:"decision_notes,omitempty"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	DecidedBy       *uuid.UUID    `json:"decided_by,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func FromModel(m *model.ParoleModel) ParoleResponse {
	resp := ParoleResponse{
		ID:              m.ParoleID,
		InmateRef:       m.ParoleInmateID,
		ApplicationDate: m.ParoleApplicationDate,
		HearingDate:     m.ParoleHearingDate,
		Status:          m.ParoleStatus,
		DecisionNotes:   m.ParoleDecisionNotes,
		DecidedAt:       m.ParoleDecidedAt,
		DecidedBy:       m.ParoleDecidedBy,
		CreatedAt:       m.ParoleCreatedAt,
		UpdatedAt:       m.ParoleUpdatedAt,
	}
	if m.Inmate != nil {
		resp.Inmate = &ParoleInmate{
			ID:       m.Inmate.InmateID,
			InmateID: m.Inmate.InmateCode,
			FullName: m.Inmate.FullName(),
			Status:   m.Inmate.InmateStatus,
			Cell:     m.Inmate.InmateAssignedCell,
		}
	}
	return resp
}

func FromModels(list []model.ParoleModel) []ParoleResponse {
	out := make([]ParoleResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
