package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prisonsphere_backend/internals/features/home/recent_activities/model"
)

const (
	CoalesceWindow = time.Hour
	Retention      = 24 * time.Hour
)

type phrase struct {
	one  string
	many string
}

var phrases = map[string]phrase{
	model.ActivityInmateRegistered:     {"new inmate registered", "new inmates registered"},
	model.ActivityInmateUpdated:        {"inmate record updated", "inmate records updated"},
	model.ActivityInmateStatusChanged:  {"inmate status changed", "inmate statuses changed"},
	model.ActivityInmateReleased:       {"inmate released", "inmates released"},
	model.ActivityVisitorLogged:        {"visitor logged", "visitors logged"},
	model.ActivityVisitorUpdated:       {"visitor record updated", "visitor records updated"},
	model.ActivityParoleSubmitted:      {"parole application submitted", "parole applications submitted"},
	model.ActivityParoleApproved:       {"parole approved", "paroles approved"},
	model.ActivityParoleDenied:         {"parole denied", "paroles denied"},
	model.ActivityWorkProgramAdded:     {"work program added", "work programs added"},
	model.ActivityWorkProgramEnrolled:  {"inmate enrolled in a work program", "inmates enrolled in work programs"},
	model.ActivityWorkProgramCompleted: {"work program completed", "work programs completed"},
	model.ActivityBehaviorLogged:       {"behavior log recorded", "behavior logs recorded"},
	model.ActivityActivityLogged:       {"activity logged", "activities logged"},
	model.ActivityReportGenerated:      {"report generated", "reports generated"},
}

// Message renders the feed text for count occurrences of activityType.
func Message(activityType string, count int) string {
	p, ok := phrases[activityType]
	if !ok {
		if count == 1 {
			return fmt.Sprintf("1 %s event", activityType)
		}
		return fmt.Sprintf("%d %s events", count, activityType)
	}
	if count == 1 {
		return "1 " + p.one
	}
	return fmt.Sprintf("%d %s", count, p.many)
}

// Record adds one occurrence of activityType to the feed inside tx.
func Record(tx *gorm.DB, activityType string) error {
	return RecordAt(tx, activityType, time.Now().UTC())
}

// RecordAt bumps the row for activityType whose last_updated falls within the past
// hour, or inserts a fresh row with count 1.
func RecordAt(tx *gorm.DB, activityType string, now time.Time) error {
	now = now.UTC()

	var row model.RecentActivityLogModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("recent_activity_type = ? AND recent_activity_last_updated >= ?", activityType, now.Add(-CoalesceWindow)).
		Order("recent_activity_last_updated DESC").
		First(&row).Error

	switch {
	case err == nil:
		count := row.RecentActivityCount + 1
		return tx.Model(&model.RecentActivityLogModel{}).
			Where("recent_activity_id = ?", row.RecentActivityID).
			Updates(map[string]any{
				"recent_activity_count":        count,
				"recent_activity_message":      Message(activityType, count),
				"recent_activity_last_updated": now,
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(&model.RecentActivityLogModel{
			RecentActivityType:        activityType,
			RecentActivityCount:       1,
			RecentActivityMessage:     Message(activityType, 1),
			RecentActivityLastUpdated: now,
		}).Error
	default:
		return err
	}
}

type FeedItem struct {
	model.RecentActivityLogModel
	TimeAgo string `json:"time_ago"`
}

// List returns the last 24 hours of feed rows, newest first.
func List(db *gorm.DB, now time.Time) ([]FeedItem, error) {
	now = now.UTC()

	var rows []model.RecentActivityLogModel
	if err := db.
		Where("recent_activity_last_updated >= ?", now.Add(-Retention)).
		Order("recent_activity_last_updated DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, FeedItem{
			RecentActivityLogModel: r,
			TimeAgo:                TimeAgo(r.RecentActivityLastUpdated, now),
		})
	}
	return items, nil
}

// Purge deletes rows older than 24 hours and reports how many were removed.
func Purge(db *gorm.DB, now time.Time) (int64, error) {
	res := db.
		Where("recent_activity_last_updated < ?", now.UTC().Add(-Retention)).
		Delete(&model.RecentActivityLogModel{})
	return res.RowsAffected, res.Error
}

func TimeAgo(t, now time.Time) string {
	minutes := int(now.Sub(t).Minutes())
	switch {
	case minutes < 2:
		return "just now"
	case minutes < 60:
		return "a few minutes ago"
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hour ago"
	}
	return fmt.Sprintf("%d hours ago", hours)
}
