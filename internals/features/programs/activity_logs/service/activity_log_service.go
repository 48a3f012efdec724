package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	recentService "prisonsphere_backend/internals/features/home/recent_activities/service"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	"prisonsphere_backend/internals/features/programs/activity_logs/model"
)

// Create appends an activity log entry. Entries are never edited.
func Create(tx *gorm.DB, inmateID uuid.UUID, activityType, description string, date time.Time) (*model.ActivityLogModel, error) {
	if _, err := inmateService.FindByID(tx, inmateID); err != nil {
		return nil, err
	}
	log := &model.ActivityLogModel{
		ActivityLogInmateID:    inmateID,
		ActivityLogType:        activityType,
		ActivityLogDescription: strings.TrimSpace(description),
		ActivityLogDate:        date.UTC(),
	}
	if err := tx.Create(log).Error; err != nil {
		return nil, err
	}
	if err := recentService.Record(tx, recentModel.ActivityActivityLogged); err != nil {
		return nil, err
	}
	return log, nil
}

type ListFilter struct {
	InmateID *uuid.UUID
	Type     string
	Offset   int
	Limit    int
}

func List(db *gorm.DB, f ListFilter) ([]model.ActivityLogModel, int64, error) {
	q := db.Model(&model.ActivityLogModel{})
	if f.InmateID != nil {
		if _, err := inmateService.FindByID(db, *f.InmateID); err != nil {
			return nil, 0, err
		}
		q = q.Where("activity_log_inmate_id = ?", *f.InmateID)
	}
	if f.Type != "" {
		q = q.Where("activity_log_type = ?", f.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit <= 0 {
		f.Limit = -1
	}
	var rows []model.ActivityLogModel
	err := q.Order("activity_log_date DESC").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error
	return rows, total, err
}

// TypeCounts tallies entries per activity type.
func TypeCounts(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Total int64
	}
	if err := db.Model(&model.ActivityLogModel{}).
		Select("activity_log_type AS type, COUNT(*) AS total").
		Group("activity_log_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(model.ActivityTypes))
	for _, t := range model.ActivityTypes {
		out[t] = 0
	}
	for _, r := range rows {
		out[r.Type] = r.Total
	}
	return out, nil
}
