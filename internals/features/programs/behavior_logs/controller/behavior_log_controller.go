package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/programs/behavior_logs/dto"
	"prisonsphere_backend/internals/features/programs/behavior_logs/model"
	"prisonsphere_backend/internals/features/programs/behavior_logs/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
)

type BehaviorLogController struct {
	DB  *gorm.DB
	Now dbtime.Clock
}

func NewBehaviorLogController(db *gorm.DB) *BehaviorLogController {
	return &BehaviorLogController{DB: db, Now: dbtime.SystemClock}
}

// POST /api/behavior-logs
func (ctrl *BehaviorLogController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertBehaviorLogRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	logDate, err := dbtime.ParseOptionalDate(req.LogDate, ctrl.Now())
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"log_date": {"must be a valid date"}})
	}
	incidents := 0
	if req.IncidentReports != nil {
		incidents = *req.IncidentReports
	}

	var (
		log     *model.BehaviorLogModel
		created bool
	)
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		log, created, err = service.Upsert(tx, service.UpsertInput{
			InmateID:        uuid.MustParse(req.InmateID),
			WorkEthic:       req.WorkEthic,
			Cooperation:     req.Cooperation,
			IncidentReports: incidents,
			SocialSkills:    req.SocialSkills,
			Notes:           req.Notes,
			LogDate:         logDate,
		})
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Behavior log recorded", dto.FromModel(log))
	}
	return helper.JsonUpdated(c, "Behavior log updated", dto.FromModel(log))
}

// GET /api/behavior-logs?inmate_id=&enrollment_id=
func (ctrl *BehaviorLogController) List(c *fiber.Ctx) error {
	var f service.ListFilter
	if raw := strings.TrimSpace(c.Query("inmate_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid inmate_id")
		}
		f.InmateID = &id
	}
	if raw := strings.TrimSpace(c.Query("enrollment_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment_id")
		}
		f.EnrollmentID = &id
	}

	rows, err := service.List(ctrl.DB.WithContext(c.UserContext()), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Behavior logs fetched", dto.FromModels(rows), nil)
}
