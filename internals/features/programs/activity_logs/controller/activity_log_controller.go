package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/programs/activity_logs/dto"
	"prisonsphere_backend/internals/features/programs/activity_logs/model"
	"prisonsphere_backend/internals/features/programs/activity_logs/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
)

type ActivityLogController struct {
	DB  *gorm.DB
	Now dbtime.Clock
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db, Now: dbtime.SystemClock}
}

var typeError = map[string][]string{
	"activity_type": {"must be one of [" + strings.Join(model.ActivityTypes, ", ") + "]"},
}

// POST /api/activity-logs
func (ctrl *ActivityLogController) Create(c *fiber.Ctx) error {
	var req dto.CreateActivityLogRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if !model.IsValidActivityType(req.ActivityType) {
		return helper.JsonValidationError(c, typeError)
	}
	date, err := dbtime.ParseOptionalDate(req.LogDate, ctrl.Now())
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"log_date": {"must be a valid date"}})
	}

	var log *model.ActivityLogModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		log, err = service.Create(tx, uuid.MustParse(req.InmateID), req.ActivityType, req.Description, date)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Activity logged", dto.FromModel(log))
}

// GET /api/activity-logs?inmate_id=&type=
func (ctrl *ActivityLogController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	f := service.ListFilter{Offset: p.Offset, Limit: p.Limit}

	if raw := strings.TrimSpace(c.Query("inmate_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid inmate_id")
		}
		f.InmateID = &id
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		if !model.IsValidActivityType(t) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity type filter")
		}
		f.Type = t
	}

	rows, total, err := service.List(ctrl.DB.WithContext(c.UserContext()), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "Activity logs fetched", dto.FromModels(rows), &pg)
}
