package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	recentService "prisonsphere_backend/internals/features/home/recent_activities/service"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	"prisonsphere_backend/internals/features/programs/behavior_logs/model"
	workService "prisonsphere_backend/internals/features/programs/work_programs/service"
)

var ErrNoActiveEnrollment = fiber.NewError(fiber.StatusBadRequest, "Inmate has no active work program to log behavior against")

type UpsertInput struct {
	InmateID        uuid.UUID
	WorkEthic       int
	Cooperation     int
	IncidentReports int
	SocialSkills    int
	Notes           *string
	LogDate         time.Time
}

// Upsert writes the behavior log for the inmate's active enrollment. A second
// submission for the same enrollment overwrites the ratings. created reports
// whether a new row was inserted.
func Upsert(tx *gorm.DB, in UpsertInput) (log *model.BehaviorLogModel, created bool, err error) {
	if _, err := inmateService.LockByID(tx, in.InmateID); err != nil {
		return nil, false, err
	}
	enrollment, err := workService.ActiveEnrollment(tx, in.InmateID)
	if err != nil {
		return nil, false, err
	}
	if enrollment == nil {
		return nil, false, ErrNoActiveEnrollment
	}

	var existing model.BehaviorLogModel
	err = tx.Where("behavior_log_inmate_id = ? AND behavior_log_enrollment_id = ?", in.InmateID, enrollment.EnrollmentID).
		First(&existing).Error
	switch {
	case err == nil:
		if err := tx.Model(&existing).Updates(map[string]any{
			"behavior_log_work_ethic":       in.WorkEthic,
			"behavior_log_cooperation":      in.Cooperation,
			"behavior_log_incident_reports": in.IncidentReports,
			"behavior_log_social_skills":    in.SocialSkills,
			"behavior_log_notes":            in.Notes,
			"behavior_log_date":             in.LogDate.UTC(),
		}).Error; err != nil {
			return nil, false, err
		}
		log = &existing
	case errors.Is(err, gorm.ErrRecordNotFound):
		log = &model.BehaviorLogModel{
			BehaviorLogInmateID:        in.InmateID,
			BehaviorLogEnrollmentID:    enrollment.EnrollmentID,
			BehaviorLogWorkEthic:       in.WorkEthic,
			BehaviorLogCooperation:     in.Cooperation,
			BehaviorLogIncidentReports: in.IncidentReports,
			BehaviorLogSocialSkills:    in.SocialSkills,
			BehaviorLogNotes:           in.Notes,
			BehaviorLogDate:            in.LogDate.UTC(),
		}
		if err := tx.Create(log).Error; err != nil {
			return nil, false, err
		}
		created = true
	default:
		return nil, false, err
	}

	if err := recentService.Record(tx, recentModel.ActivityBehaviorLogged); err != nil {
		return nil, false, err
	}
	if err := tx.Where("behavior_log_id = ?", log.BehaviorLogID).First(log).Error; err != nil {
		return nil, false, err
	}
	return log, created, nil
}

type ListFilter struct {
	InmateID     *uuid.UUID
	EnrollmentID *uuid.UUID
}

func List(db *gorm.DB, f ListFilter) ([]model.BehaviorLogModel, error) {
	q := db.Model(&model.BehaviorLogModel{})
	if f.InmateID != nil {
		if _, err := inmateService.FindByID(db, *f.InmateID); err != nil {
			return nil, err
		}
		q = q.Where("behavior_log_inmate_id = ?", *f.InmateID)
	}
	if f.EnrollmentID != nil {
		q = q.Where("behavior_log_enrollment_id = ?", *f.EnrollmentID)
	}
	var rows []model.BehaviorLogModel
	err := q.Order("behavior_log_date DESC").Find(&rows).Error
	return rows, err
}

// ForInmate returns every behavior log of the inmate across enrollments.
func ForInmate(db *gorm.DB, inmateID uuid.UUID) ([]model.BehaviorLogModel, error) {
	var rows []model.BehaviorLogModel
	err := db.Where("behavior_log_inmate_id = ?", inmateID).Order("behavior_log_date ASC").Find(&rows).Error
	return rows, err
}
