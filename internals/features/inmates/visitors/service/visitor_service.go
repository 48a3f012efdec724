package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	recentService "prisonsphere_backend/internals/features/home/recent_activities/service"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	"prisonsphere_backend/internals/features/inmates/visitors/model"
)

var ErrVisitorNotFound = fiber.NewError(fiber.StatusNotFound, "Visitor record not found")

// Log records a visit. The inmate must currently be incarcerated.
func Log(tx *gorm.DB, v *model.VisitorModel) error {
	if _, err := inmateService.RequireIncarcerated(tx, v.VisitorInmateID); err != nil {
		return err
	}
	if err := tx.Create(v).Error; err != nil {
		return err
	}
	return recentService.Record(tx, recentModel.ActivityVisitorLogged)
}

func FindByID(db *gorm.DB, id uuid.UUID) (*model.VisitorModel, error) {
	var v model.VisitorModel
	if err := db.Where("visitor_id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ByInmate pages through an inmate's visits, newest first.
func ByInmate(db *gorm.DB, inmateID uuid.UUID, offset, limit int) ([]model.VisitorModel, int64, error) {
	if _, err := inmateService.FindByID(db, inmateID); err != nil {
		return nil, 0, err
	}
	q := db.Model(&model.VisitorModel{}).Where("visitor_inmate_id = ?", inmateID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.VisitorModel
	err := q.Order("visitor_visit_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

// Update edits a visit record. The inmate reference cannot change.
func Update(tx *gorm.DB, id uuid.UUID, changes map[string]any) (*model.VisitorModel, error) {
	delete(changes, "visitor_inmate_id")

	v, err := FindByID(tx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return v, nil
	}
	if err := tx.Model(v).Updates(changes).Error; err != nil {
		return nil, err
	}
	if err := recentService.Record(tx, recentModel.ActivityVisitorUpdated); err != nil {
		return nil, err
	}
	return FindByID(tx, id)
}
