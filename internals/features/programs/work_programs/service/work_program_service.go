package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	recentService "prisonsphere_backend/internals/features/home/recent_activities/service"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	behaviorModel "prisonsphere_backend/internals/features/programs/behavior_logs/model"
	"prisonsphere_backend/internals/features/programs/scoring"
	"prisonsphere_backend/internals/features/programs/work_programs/model"
	helper "prisonsphere_backend/internals/helpers"
)

var (
	ErrProgramNotFound    = fiber.NewError(fiber.StatusNotFound, "Work program not found")
	ErrProgramExists      = fiber.NewError(fiber.StatusConflict, "A work program with that name already exists")
	ErrEnrollmentNotFound = fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	ErrActiveEnrollment   = fiber.NewError(fiber.StatusBadRequest, "Inmate already has an active work program")
	ErrInvalidDateRange   = fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
)

/* =========================
   Catalog
========================= */

func ListPrograms(db *gorm.DB) ([]model.WorkProgramModel, error) {
	var rows []model.WorkProgramModel
	err := db.Order("work_program_name ASC").Find(&rows).Error
	return rows, err
}

func CreateProgram(tx *gorm.DB, name, description string) (*model.WorkProgramModel, error) {
	wp := &model.WorkProgramModel{
		WorkProgramName:        strings.TrimSpace(name),
		WorkProgramDescription: strings.TrimSpace(description),
	}
	if err := tx.Create(wp).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrProgramExists
		}
		return nil, err
	}
	if err := recentService.Record(tx, recentModel.ActivityWorkProgramAdded); err != nil {
		return nil, err
	}
	return wp, nil
}

/* =========================
   Enrollment
========================= */

type EnrollInput struct {
	InmateID  uuid.UUID
	ProgramID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// Enroll assigns an incarcerated inmate to a program. The inmate row stays locked
// while the single-active rule is checked; the partial unique index backs it.
func Enroll(tx *gorm.DB, in EnrollInput) (*model.WorkProgramEnrollmentModel, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if _, err := inmateService.RequireIncarcerated(tx, in.InmateID); err != nil {
		return nil, err
	}

	var program model.WorkProgramModel
	if err := tx.Where("work_program_id = ?", in.ProgramID).First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	var active int64
	if err := tx.Model(&model.WorkProgramEnrollmentModel{}).
		Where("enrollment_inmate_id = ? AND enrollment_status = ?", in.InmateID, model.EnrollmentActive).
		Count(&active).Error; err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrActiveEnrollment
	}

	e := &model.WorkProgramEnrollmentModel{
		EnrollmentInmateID:      in.InmateID,
		EnrollmentWorkProgramID: in.ProgramID,
		EnrollmentStartDate:     in.StartDate.UTC(),
		EnrollmentEndDate:       in.EndDate.UTC(),
		EnrollmentStatus:        model.EnrollmentActive,
	}
	if err := tx.Create(e).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrActiveEnrollment
		}
		return nil, err
	}
	if err := recentService.Record(tx, recentModel.ActivityWorkProgramEnrolled); err != nil {
		return nil, err
	}
	e.WorkProgram = &program
	return e, nil
}

func FindEnrollment(db *gorm.DB, id uuid.UUID) (*model.WorkProgramEnrollmentModel, error) {
	var e model.WorkProgramEnrollmentModel
	if err := db.Preload("WorkProgram").Where("enrollment_id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ActiveEnrollment returns the inmate's Active enrollment, nil when there is none.
func ActiveEnrollment(db *gorm.DB, inmateID uuid.UUID) (*model.WorkProgramEnrollmentModel, error) {
	var e model.WorkProgramEnrollmentModel
	err := db.Where("enrollment_inmate_id = ? AND enrollment_status = ?", inmateID, model.EnrollmentActive).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

type EnrollmentFilter struct {
	Status   string
	InmateID *uuid.UUID
	Offset   int
	Limit    int
}

func ListEnrollments(db *gorm.DB, f EnrollmentFilter) ([]model.WorkProgramEnrollmentModel, int64, error) {
	q := db.Model(&model.WorkProgramEnrollmentModel{})
	if f.Status != "" {
		q = q.Where("enrollment_status = ?", f.Status)
	}
	if f.InmateID != nil {
		q = q.Where("enrollment_inmate_id = ?", *f.InmateID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit <= 0 {
		f.Limit = -1
	}
	var rows []model.WorkProgramEnrollmentModel
	err := q.Preload("WorkProgram").
		Order("enrollment_start_date DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&rows).Error
	return rows, total, err
}

/* =========================
   Auto-completion
========================= */

// CompleteExpired freezes the performance rating of every Active enrollment whose
// end date is at or before now and marks it Completed. Rows are completed one
// transaction each; a failing row is logged and skipped. One feed entry is
// recorded per sweep when anything completed.
func CompleteExpired(ctx context.Context, db *gorm.DB, now time.Time) (int, error) {
	now = now.UTC()
	db = db.WithContext(ctx)

	var due []model.WorkProgramEnrollmentModel
	if err := db.
		Where("enrollment_status = ? AND enrollment_end_date <= ?", model.EnrollmentActive, now).
		Find(&due).Error; err != nil {
		return 0, err
	}

	completed := 0
	for i := range due {
		e := &due[i]
		err := db.Transaction(func(tx *gorm.DB) error {
			rating, err := performanceRating(tx, e.EnrollmentID)
			if err != nil {
				return err
			}
			res := tx.Model(&model.WorkProgramEnrollmentModel{}).
				Where("enrollment_id = ? AND enrollment_status = ?", e.EnrollmentID, model.EnrollmentActive).
				Updates(map[string]any{
					"enrollment_status":             model.EnrollmentCompleted,
					"enrollment_completion_date":    now,
					"enrollment_performance_rating": rating,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				completed++
			}
			return nil
		})
		if err != nil {
			zap.L().Error("complete enrollment failed",
				zap.String("enrollment_id", e.EnrollmentID.String()), zap.Error(err))
		}
	}

	if completed > 0 {
		if err := db.Transaction(func(tx *gorm.DB) error {
			return recentService.RecordAt(tx, recentModel.ActivityWorkProgramCompleted, now)
		}); err != nil {
			zap.L().Error("record completion activity failed", zap.Error(err))
		}
	}
	return completed, nil
}

func performanceRating(db *gorm.DB, enrollmentID uuid.UUID) (int, error) {
	var logs []behaviorModel.BehaviorLogModel
	if err := db.Where("behavior_log_enrollment_id = ?", enrollmentID).Find(&logs).Error; err != nil {
		return 0, err
	}
	return scoring.PerformanceRating(scoring.FromBehaviorLogs(logs)), nil
}
