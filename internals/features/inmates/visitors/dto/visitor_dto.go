package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"prisonsphere_backend/internals/features/inmates/visitors/model"
	"prisonsphere_backend/internals/helpers/dbtime"
)

type CreateVisitorRequest struct {
	VisitorName   string  `json:"visitor_name" validate:"required,max=150"`
	Relationship  string  `json:"relationship" validate:"required,max=50"`
	ContactNumber string  `json:"contact_number" validate:"required,max=30"`
	VisitDate     string  `json:"visit_date" validate:"required"`
	Duration      int     `json:"duration" validate:"required,min=1,max=1440"`
	Purpose       string  `json:"purpose" validate:"required"`
	StaffNotes    *string `json:"staff_notes"`
}

func (r CreateVisitorRequest) ToModel(inmateID uuid.UUID) (*model.VisitorModel, map[string][]string) {
	at, err := dbtime.ParseDate(r.VisitDate)
	if err != nil {
		return nil, map[string][]string{"visit_date": {"must be a valid date"}}
	}
	return &model.VisitorModel{
		VisitorInmateID:        inmateID,
		VisitorName:            strings.TrimSpace(r.VisitorName),
		VisitorRelationship:    strings.TrimSpace(r.Relationship),
		VisitorContactNumber:   strings.TrimSpace(r.ContactNumber),
		VisitorVisitAt:         at,
		VisitorDurationMinutes: r.Duration,
		VisitorPurpose:         strings.TrimSpace(r.Purpose),
		VisitorStaffNotes:      r.StaffNotes,
	}, nil
}

type UpdateVisitorRequest struct {
	VisitorName   *string `json:"visitor_name" validate:"omitempty,min=1,max=150"`
	Relationship  *string `json:"relationship" validate:"omitempty,min=1,max=50"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,min=1,max=30"`
	VisitDate     *string `json:"visit_date"`
	Duration      *int    `json:"duration" validate:"omitempty,min=1,max=1440"`
	Purpose       *string `json:"purpose" validate:"omitempty,min=1"`
	StaffNotes    *string `json:"staff_notes"`
}

func (r UpdateVisitorRequest) ToChanges() (map[string]any, map[string][]string) {
	ch := map[string]any{}
	if r.VisitorName != nil {
		ch["visitor_name"] = strings.TrimSpace(*r.VisitorName)
	}
	if r.Relationship != nil {
		ch["visitor_relationship"] = strings.TrimSpace(*r.Relationship)
	}
	if r.ContactNumber != nil {
		ch["visitor_contact_number"] = strings.TrimSpace(*r.ContactNumber)
	}
	if r.VisitDate != nil {
		at, err := dbtime.ParseDate(*r.VisitDate)
		if err != nil {
			return nil, map[string][]string{"visit_date": {"must be a valid date"}}
		}
		ch["visitor_visit_at"] = at
	}
	if r.Duration != nil {
		ch["visitor_duration_minutes"] = *r.Duration
	}
	if r.Purpose != nil {
		ch["visitor_purpose"] = strings.TrimSpace(*r.Purpose)
	}
	if r.StaffNotes != nil {
		ch["visitor_staff_notes"] = *r.StaffNotes
	}
	return ch, nil
}

type VisitorResponse struct {
	ID            uuid.UUID `json:"id"`
	InmateRef     uuid.UUID `json:"inmate_ref"`
	VisitorName   string    `json:"visitor_name"`
	Relationship  string    `json:"relationship"`
	ContactNumber string    `json:"contact_number"`
	VisitDate     time.Time `json:"visit_date"`
	Duration      int       `json:"duration"`
	Purpose       string    `json:"purpose"`
	StaffNotes    *string   `json:"staff_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(m *model.VisitorModel) VisitorResponse {
	return VisitorResponse{
		ID:            m.VisitorID,
		InmateRef:     m.VisitorInmateID,
		VisitorName:   m.VisitorName,
		Relationship:  m.VisitorRelationship,
		ContactNumber: m.VisitorContactNumber,
		VisitDate:     m.VisitorVisitAt,
		Duration:      m.VisitorDurationMinutes,
		Purpose:       m.VisitorPurpose,
		StaffNotes:    m.VisitorStaffNotes,
		CreatedAt:     m.VisitorCreatedAt,
		UpdatedAt:     m.VisitorUpdatedAt,
	}
}

func FromModels(list []model.VisitorModel) []VisitorResponse {
	out := make([]VisitorResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
