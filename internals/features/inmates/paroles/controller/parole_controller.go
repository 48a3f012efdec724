package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/inmates/paroles/dto"
	"prisonsphere_backend/internals/features/inmates/paroles/model"
	"prisonsphere_backend/internals/features/inmates/paroles/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
)

type ParoleController struct {
	DB  *gorm.DB
	Now dbtime.Clock
}

func NewParoleController(db *gorm.DB) *ParoleController {
	return &ParoleController{DB: db, Now: dbtime.SystemClock}
}

// POST /api/paroles
func (ctrl *ParoleController) Create(c *fiber.Ctx) error {
	var req dto.CreateParoleRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	now := ctrl.Now()
	hearing, err := dbtime.ParseDate(req.HearingDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"hearing_date": {"must be a valid date"}})
	}
	applied, err := dbtime.ParseOptionalDate(req.ApplicationDate, now)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"application_date": {"must be a valid date"}})
	}

	var created *model.ParoleModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = service.Create(tx, service.CreateInput{
			InmateID:        uuid.MustParse(req.InmateID),
			ApplicationDate: applied,
			HearingDate:     hearing,
			Notes:           req.Notes,
		}, now)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Parole application submitted", dto.FromModel(created))
}

// PUT /api/paroles/:id
func (ctrl *ParoleController) Decide(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.DecideParoleRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	var decidedBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		decidedBy = &uid
	}

	var decided *model.ParoleModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		decided, err = service.Decide(tx, service.DecideInput{
			ParoleID:  id,
			Decision:  req.Status,
			Notes:     req.DecisionNotes,
			DecidedBy: decidedBy,
		}, ctrl.Now())
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Parole "+strings.ToLower(req.Status), dto.FromModel(decided))
}

// GET /api/paroles?status=
func (ctrl *ParoleController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && status != model.ParolePending && status != model.ParoleApproved && status != model.ParoleDenied {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status filter")
	}

	rows, total, err := service.List(ctrl.DB.WithContext(c.UserContext()), service.ListFilter{
		Status: status, Offset: p.Offset, Limit: p.Limit,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "Parole applications fetched", dto.FromModels(rows), &pg)
}

// GET /api/paroles/upcoming (public)
func (ctrl *ParoleController) Upcoming(c *fiber.Ctx) error {
	rows, err := service.Upcoming(ctrl.DB.WithContext(c.UserContext()), ctrl.Now(), c.QueryInt("limit", 10))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Upcoming parole hearings", dto.FromModels(rows), nil)
}

// GET /api/paroles/:id
func (ctrl *ParoleController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	p, err := service.FindByID(ctrl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Parole application fetched", dto.FromModel(p))
}

// GET /api/paroles/inmate/:inmateId
func (ctrl *ParoleController) ByInmate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "inmateId")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := service.ByInmate(ctrl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Parole applications fetched", dto.FromModels(rows), nil)
}
