package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	recentService "prisonsphere_backend/internals/features/home/recent_activities/service"
	inmateDTO "prisonsphere_backend/internals/features/inmates/inmates/dto"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	paroleDTO "prisonsphere_backend/internals/features/inmates/paroles/dto"
	paroleService "prisonsphere_backend/internals/features/inmates/paroles/service"
	visitorDTO "prisonsphere_backend/internals/features/inmates/visitors/dto"
	visitorService "prisonsphere_backend/internals/features/inmates/visitors/service"
	activityDTO "prisonsphere_backend/internals/features/programs/activity_logs/dto"
	activityService "prisonsphere_backend/internals/features/programs/activity_logs/service"
	behaviorDTO "prisonsphere_backend/internals/features/programs/behavior_logs/dto"
	behaviorService "prisonsphere_backend/internals/features/programs/behavior_logs/service"
	"prisonsphere_backend/internals/features/programs/scoring"
	workDTO "prisonsphere_backend/internals/features/programs/work_programs/dto"
	workService "prisonsphere_backend/internals/features/programs/work_programs/service"
	"prisonsphere_backend/internals/features/reports/reports/dto"
	"prisonsphere_backend/internals/features/reports/reports/model"
)

var (
	ErrReportNotFound    = fiber.NewError(fiber.StatusNotFound, "Report not found")
	ErrUnknownReportType = fiber.NewError(fiber.StatusBadRequest, "Unknown report type. Use inmate-info or rehab-status")
)

// Path segments used by the report URLs.
const (
	KindInmateInfo  = "inmate-info"
	KindRehabStatus = "rehab-status"
)

// TypeForKind maps a URL kind to the stored report type.
func TypeForKind(kind string) (string, error) {
	switch kind {
	case KindInmateInfo:
		return model.ReportTypeInmateInfo, nil
	case KindRehabStatus:
		return model.ReportTypeRehabStatus, nil
	}
	return "", ErrUnknownReportType
}

// BuildInmateReport gathers the inmate's profile and every record that
// references it.
func BuildInmateReport(db *gorm.DB, inmateID uuid.UUID, now time.Time) (*dto.InmateReport, error) {
	inmate, err := inmateService.FindByID(db, inmateID)
	if err != nil {
		return nil, err
	}

	visitors, _, err := visitorService.ByInmate(db, inmateID, 0, -1)
	if err != nil {
		return nil, err
	}
	paroles, err := paroleService.ByInmate(db, inmateID)
	if err != nil {
		return nil, err
	}
	enrollments, _, err := workService.ListEnrollments(db, workService.EnrollmentFilter{InmateID: &inmateID})
	if err != nil {
		return nil, err
	}
	behavior, err := behaviorService.ForInmate(db, inmateID)
	if err != nil {
		return nil, err
	}
	activities, _, err := activityService.List(db, activityService.ListFilter{InmateID: &inmateID})
	if err != nil {
		return nil, err
	}

	return &dto.InmateReport{
		Inmate:         inmateDTO.FromModel(inmate),
		Visitors:       visitorDTO.FromModels(visitors),
		Paroles:        paroleDTO.FromModels(paroles),
		Enrollments:    workDTO.FromEnrollments(enrollments),
		BehaviorLogs:   behaviorDTO.FromModels(behavior),
		ActivityLogs:   activityDTO.FromModels(activities),
		Rehabilitation: scoring.RehabScore(scoring.FromBehaviorLogs(behavior)),
		GeneratedAt:    now.UTC(),
	}, nil
}

// snapshot picks the part of the aggregate archived for a report type.
func snapshot(reportType string, r *dto.InmateReport) any {
	if reportType == model.ReportTypeRehabStatus {
		return struct {
			Inmate         inmateDTO.InmateResponse          `json:"inmate"`
			Rehabilitation scoring.RehabResult               `json:"rehabilitation"`
			Enrollments    []workDTO.EnrollmentResponse      `json:"work_programs"`
			BehaviorLogs   []behaviorDTO.BehaviorLogResponse `json:"behavior_logs"`
			ActivityLogs   []activityDTO.ActivityLogResponse `json:"activity_logs"`
			GeneratedAt    time.Time                         `json:"generated_at"`
		}{r.Inmate, r.Rehabilitation, r.Enrollments, r.BehaviorLogs, r.ActivityLogs, r.GeneratedAt}
	}
	return struct {
		Inmate      inmateDTO.InmateResponse     `json:"inmate"`
		Visitors    []visitorDTO.VisitorResponse `json:"visitors"`
		Paroles     []paroleDTO.ParoleResponse   `json:"paroles"`
		GeneratedAt time.Time                    `json:"generated_at"`
	}{r.Inmate, r.Visitors, r.Paroles, r.GeneratedAt}
}

func title(reportType string, r *dto.InmateReport) string {
	if reportType == model.ReportTypeRehabStatus {
		return fmt.Sprintf("Rehabilitation Status Report - %s", r.Inmate.InmateID)
	}
	return fmt.Sprintf("Inmate Information Report - %s", r.Inmate.InmateID)
}

// Archive stores a write-once snapshot of the report for kind.
func Archive(tx *gorm.DB, kind string, inmateID, createdBy uuid.UUID, now time.Time) (*model.ReportModel, error) {
	reportType, err := TypeForKind(kind)
	if err != nil {
		return nil, err
	}
	agg, err := BuildInmateReport(tx, inmateID, now)
	if err != nil {
		return nil, err
	}
	details, err := sonic.Marshal(snapshot(reportType, agg))
	if err != nil {
		return nil, err
	}

	row := &model.ReportModel{
		ReportTitle:     title(reportType, agg),
		ReportType:      reportType,
		ReportInmateID:  inmateID,
		ReportDetails:   datatypes.JSON(details),
		ReportCreatedBy: createdBy,
	}
	if err := tx.Create(row).Error; err != nil {
		return nil, err
	}
	if err := recentService.Record(tx, recentModel.ActivityReportGenerated); err != nil {
		return nil, err
	}
	return row, nil
}

type ListFilter struct {
	Type     string
	InmateID *uuid.UUID
	Offset   int
	Limit    int
}

func List(db *gorm.DB, f ListFilter) ([]model.ReportModel, int64, error) {
	q := db.Model(&model.ReportModel{})
	if f.Type != "" {
		q = q.Where("report_type = ?", f.Type)
	}
	if f.InmateID != nil {
		q = q.Where("report_inmate_id = ?", *f.InmateID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit <= 0 {
		f.Limit = -1
	}
	var rows []model.ReportModel
	err := q.Order("report_created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error
	return rows, total, err
}

func FindByID(db *gorm.DB, id uuid.UUID) (*model.ReportModel, error) {
	var r model.ReportModel
	if err := db.First(&r, "report_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &r, nil
}
