package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"prisonsphere_backend/internals/features/inmates/inmates/model"
	"prisonsphere_backend/internals/helpers/dbtime"
)

/* =========================
   Requests
========================= */

// CreateInmateRequest is accepted as JSON or multipart form (with optional
// "profile_image" file part).
type CreateInmateRequest struct {
	FirstName        string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName         string `json:"last_name" form:"last_name" validate:"required,max=100"`
	DateOfBirth      string `json:"date_of_birth" form:"date_of_birth" validate:"required"`
	Gender           string `json:"gender" form:"gender" validate:"required,oneof=Male Female Other"`
	AdmissionDate    string `json:"admission_date" form:"admission_date"`
	SentenceDuration int    `json:"sentence_duration" form:"sentence_duration" validate:"required,min=1"`
	CrimeDetails     string `json:"crime_details" form:"crime_details" validate:"required"`
	AssignedCell     string `json:"assigned_cell" form:"assigned_cell" validate:"required,max=50"`
}

// ToModel parses dates; admission defaults to now.
func (r CreateInmateRequest) ToModel(now time.Time) (*model.InmateModel, map[string][]string) {
	errs := map[string][]string{}

	dob, err := dbtime.ParseDate(r.DateOfBirth)
	if err != nil {
		errs["date_of_birth"] = append(errs["date_of_birth"], "must be a valid date")
	} else if !dob.Before(now) {
		errs["date_of_birth"] = append(errs["date_of_birth"], "must be in the past")
	}
	admission, err := dbtime.ParseOptionalDate(r.AdmissionDate, now)
	if err != nil {
		errs["admission_date"] = append(errs["admission_date"], "must be a valid date")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &model.InmateModel{
		InmateFirstName:      strings.TrimSpace(r.FirstName),
		InmateLastName:       strings.TrimSpace(r.LastName),
		InmateDateOfBirth:    dob,
		InmateGender:         r.Gender,
		InmateAdmissionDate:  admission,
		InmateSentenceMonths: r.SentenceDuration,
		InmateCrimeDetails:   strings.TrimSpace(r.CrimeDetails),
		InmateAssignedCell:   strings.TrimSpace(r.AssignedCell),
	}, nil
}

// UpdateInmateRequest is a partial update; omitted fields are left alone.
type UpdateInmateRequest struct {
	FirstName        *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName         *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	DateOfBirth      *string `json:"date_of_birth"`
	Gender           *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	AdmissionDate    *string `json:"admission_date"`
	SentenceDuration *int    `json:"sentence_duration" validate:"omitempty,min=1"`
	CrimeDetails     *string `json:"crime_details" validate:"omitempty,min=1"`
	AssignedCell     *string `json:"assigned_cell" validate:"omitempty,min=1,max=50"`
	Status           *string `json:"status"`
}

// ToChanges maps the provided fields to column updates.
func (r UpdateInmateRequest) ToChanges() (map[string]any, map[string][]string) {
	ch := map[string]any{}
	errs := map[string][]string{}

	if r.FirstName != nil {
		ch["inmate_first_name"] = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		ch["inmate_last_name"] = strings.TrimSpace(*r.LastName)
	}
	if r.DateOfBirth != nil {
		if t, err := dbtime.ParseDate(*r.DateOfBirth); err != nil {
			errs["date_of_birth"] = []string{"must be a valid date"}
		} else {
			ch["inmate_date_of_birth"] = t
		}
	}
	if r.Gender != nil {
		ch["inmate_gender"] = *r.Gender
	}
	if r.AdmissionDate != nil {
		if t, err := dbtime.ParseDate(*r.AdmissionDate); err != nil {
			errs["admission_date"] = []string{"must be a valid date"}
		} else {
			ch["inmate_admission_date"] = t
		}
	}
	if r.SentenceDuration != nil {
		ch["inmate_sentence_months"] = *r.SentenceDuration
	}
	if r.CrimeDetails != nil {
		ch["inmate_crime_details"] = strings.TrimSpace(*r.CrimeDetails)
	}
	if r.AssignedCell != nil {
		ch["inmate_assigned_cell"] = strings.TrimSpace(*r.AssignedCell)
	}
	if r.Status != nil {
		ch["inmate_status"] = *r.Status
	}
	return ch, errs
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Incarcerated Released Parole"`
}

/* =========================
   Responses
========================= */

type InmateResponse struct {
	ID               uuid.UUID `json:"id"`
	InmateID         string    `json:"inmate_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	FullName         string    `json:"full_name"`
	DateOfBirth      time.Time `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	AdmissionDate    time.Time `json:"admission_date"`
	SentenceDuration int       `json:"sentence_duration"`
	CrimeDetails     string    `json:"crime_details"`
	AssignedCell     string    `json:"assigned_cell"`
	ProfileImage     *string   `json:"profile_image,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromModel(m *model.InmateModel) InmateResponse {
	return InmateResponse{
		ID:               m.InmateID,
		InmateID:         m.InmateCode,
		FirstName:        m.InmateFirstName,
		LastName:         m.InmateLastName,
		FullName:         m.FullName(),
		DateOfBirth:      m.InmateDateOfBirth,
		Gender:           m.InmateGender,
		AdmissionDate:    m.InmateAdmissionDate,
		SentenceDuration: m.InmateSentenceMonths,
		CrimeDetails:     m.InmateCrimeDetails,
		AssignedCell:     m.InmateAssignedCell,
		ProfileImage:     m.InmateProfileImageURL,
		Status:           m.InmateStatus,
		CreatedAt:        m.InmateCreatedAt,
		UpdatedAt:        m.InmateUpdatedAt,
	}
}

func FromModels(list []model.InmateModel) []InmateResponse {
	out := make([]InmateResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
