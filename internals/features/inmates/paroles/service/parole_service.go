package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	recentService "prisonsphere_backend/internals/features/home/recent_activities/service"
	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	"prisonsphere_backend/internals/features/inmates/paroles/model"
)

var (
	ErrParoleNotFound     = fiber.NewError(fiber.StatusNotFound, "Parole application not found")
	ErrHearingNotInFuture = fiber.NewError(fiber.StatusBadRequest, "Hearing date must be in the future")
	ErrPendingExists      = fiber.NewError(fiber.StatusBadRequest, "Inmate already has a pending parole application")
	ErrAlreadyOnParole    = fiber.NewError(fiber.StatusBadRequest, "Inmate is already on parole")
	ErrDecisionMade       = fiber.NewError(fiber.StatusBadRequest, "Parole decision already made")
	ErrInvalidDecision    = fiber.NewError(fiber.StatusBadRequest, "Decision must be Approved or Denied")
	ErrInmateReleased     = fiber.NewError(fiber.StatusBadRequest, "Inmate has been released")
)

type CreateInput struct {
	InmateID        uuid.UUID
	ApplicationDate time.Time
	HearingDate     time.Time
	Notes           *string
}

// Create files a Pending application for an incarcerated inmate.
func Create(tx *gorm.DB, in CreateInput, now time.Time) (*model.ParoleModel, error) {
	if _, err := inmateService.RequireIncarcerated(tx, in.InmateID); err != nil {
		return nil, err
	}
	if !in.HearingDate.After(now) {
		return nil, ErrHearingNotInFuture
	}

	var pending int64
	if err := tx.Model(&model.ParoleModel{}).
		Where("parole_inmate_id = ? AND parole_status = ?", in.InmateID, model.ParolePending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrPendingExists
	}

	applied := in.ApplicationDate
	if applied.IsZero() {
		applied = now
	}
	p := &model.ParoleModel{
		ParoleInmateID:        in.InmateID,
		ParoleApplicationDate: applied.UTC(),
		ParoleHearingDate:     in.HearingDate.UTC(),
		ParoleStatus:          model.ParolePending,
		ParoleDecisionNotes:   in.Notes,
	}
	if err := tx.Create(p).Error; err != nil {
		return nil, err
	}
	if err := recentService.Record(tx, recentModel.ActivityParoleSubmitted); err != nil {
		return nil, err
	}
	return p, nil
}

type DecideInput struct {
	ParoleID  uuid.UUID
	Decision  string
	Notes     *string
	DecidedBy *uuid.UUID
}

// Decide moves a Pending application to Approved or Denied, exactly once.
// Approval moves the inmate to Parole in the same transaction.
func Decide(tx *gorm.DB, in DecideInput, now time.Time) (*model.ParoleModel, error) {
	if in.Decision != model.ParoleApproved && in.Decision != model.ParoleDenied {
		return nil, ErrInvalidDecision
	}

	var p model.ParoleModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("parole_id = ?", in.ParoleID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParoleNotFound
		}
		return nil, err
	}

	switch p.ParoleStatus {
	case model.ParoleApproved:
		return nil, ErrAlreadyOnParole
	case model.ParoleDenied:
		return nil, ErrDecisionMade
	}

	decidedAt := now.UTC()
	updates := map[string]any{
		"parole_status":     in.Decision,
		"parole_decided_at": decidedAt,
		"parole_decided_by": in.DecidedBy,
	}
	if in.Notes != nil {
		updates["parole_decision_notes"] = *in.Notes
	}

	activity := recentModel.ActivityParoleDenied
	if in.Decision == model.ParoleApproved {
		activity = recentModel.ActivityParoleApproved
		if err := moveInmateToParole(tx, p.ParoleInmateID); err != nil {
			return nil, err
		}
	} else if err := revokeEarlyParole(tx, p.ParoleInmateID); err != nil {
		return nil, err
	}

	if err := tx.Model(&p).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := recentService.Record(tx, activity); err != nil {
		return nil, err
	}
	return FindByID(tx, p.ParoleID)
}

func moveInmateToParole(tx *gorm.DB, inmateID uuid.UUID) error {
	inmate, err := inmateService.LockByID(tx, inmateID)
	if err != nil {
		return err
	}
	switch inmate.InmateStatus {
	case inmateModel.StatusParole:
		return nil
	case inmateModel.StatusReleased:
		return ErrInmateReleased
	}
	return tx.Model(inmate).Update("inmate_status", inmateModel.StatusParole).Error
}

// revokeEarlyParole returns an inmate moved to Parole ahead of the decision back
// to Incarcerated once that application is denied.
func revokeEarlyParole(tx *gorm.DB, inmateID uuid.UUID) error {
	inmate, err := inmateService.LockByID(tx, inmateID)
	if err != nil {
		return err
	}
	if inmate.InmateStatus != inmateModel.StatusParole {
		return nil
	}
	return tx.Model(inmate).Update("inmate_status", inmateModel.StatusIncarcerated).Error
}

/* =========================
   Queries
========================= */

func FindByID(db *gorm.DB, id uuid.UUID) (*model.ParoleModel, error) {
	var p model.ParoleModel
	if err := db.Preload("Inmate").Where("parole_id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParoleNotFound
		}
		return nil, err
	}
	return &p, nil
}

type ListFilter struct {
	Status string
	Offset int
	Limit  int
}

func List(db *gorm.DB, f ListFilter) ([]model.ParoleModel, int64, error) {
	q := db.Model(&model.ParoleModel{})
	if f.Status != "" {
		q = q.Where("parole_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ParoleModel
	err := q.Preload("Inmate").
		Order("parole_application_date DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&rows).Error
	return rows, total, err
}

func ByInmate(db *gorm.DB, inmateID uuid.UUID) ([]model.ParoleModel, error) {
	if _, err := inmateService.FindByID(db, inmateID); err != nil {
		return nil, err
	}
	var rows []model.ParoleModel
	err := db.Where("parole_inmate_id = ?", inmateID).
		Order("parole_application_date DESC").
		Find(&rows).Error
	return rows, err
}

// Upcoming lists Pending applications whose hearing is still ahead, soonest first.
func Upcoming(db *gorm.DB, now time.Time, limit int) ([]model.ParoleModel, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []model.ParoleModel
	err := db.Preload("Inmate").
		Where("parole_status = ? AND parole_hearing_date >= ?", model.ParolePending, now.UTC()).
		Order("parole_hearing_date ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
