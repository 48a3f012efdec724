package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	inmateDTO "prisonsphere_backend/internals/features/inmates/inmates/dto"
	paroleDTO "prisonsphere_backend/internals/features/inmates/paroles/dto"
	visitorDTO "prisonsphere_backend/internals/features/inmates/visitors/dto"
	activityDTO "prisonsphere_backend/internals/features/programs/activity_logs/dto"
	behaviorDTO "prisonsphere_backend/internals/features/programs/behavior_logs/dto"
	"prisonsphere_backend/internals/features/programs/scoring"
	workDTO "prisonsphere_backend/internals/features/programs/work_programs/dto"
	"prisonsphere_backend/internals/features/reports/reports/model"
)

// InmateReport is everything recorded about one inmate, gathered for the
// report endpoints and PDFs.
type InmateReport struct {
	Inmate         inmateDTO.InmateResponse          `json:"inmate"`
	Visitors       []visitorDTO.VisitorResponse      `json:"visitors"`
	Paroles        []paroleDTO.ParoleResponse        `json:"paroles"`
	Enrollments    []workDTO.EnrollmentResponse      `json:"work_programs"`
	BehaviorLogs   []behaviorDTO.BehaviorLogResponse `json:"behavior_logs"`
	ActivityLogs   []activityDTO.ActivityLogResponse `json:"activity_logs"`
	Rehabilitation scoring.RehabResult               `json:"rehabilitation"`
	GeneratedAt    time.Time                         `json:"generated_at"`
}

type ReportResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Type      string          `json:"report_type"`
	InmateRef uuid.UUID       `json:"inmate_ref"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedBy uuid.UUID       `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

func FromModel(m *model.ReportModel) ReportResponse {
	return ReportResponse{
		ID:        m.ReportID,
		Title:     m.ReportTitle,
		Type:      m.ReportType,
		InmateRef: m.ReportInmateID,
		Details:   json.RawMessage(m.ReportDetails),
		CreatedBy: m.ReportCreatedBy,
		CreatedAt: m.ReportCreatedAt,
	}
}

// FromModels omits details; list views only need the headers.
func FromModels(list []model.ReportModel) []ReportResponse {
	out := make([]ReportResponse, 0, len(list))
	for i := range list {
		r := FromModel(&list[i])
		r.Details = nil
		out = append(out, r)
	}
	return out
}
