package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/inmates/visitors/dto"
	"prisonsphere_backend/internals/features/inmates/visitors/model"
	"prisonsphere_backend/internals/features/inmates/visitors/service"
	helper "prisonsphere_backend/internals/helpers"
)

type VisitorController struct {
	DB *gorm.DB
}

func NewVisitorController(db *gorm.DB) *VisitorController {
	return &VisitorController{DB: db}
}

// POST /api/visitors/:inmateId
func (ctrl *VisitorController) Create(c *fiber.Ctx) error {
	inmateID, err := helper.ParseUUIDParam(c, "inmateId")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateVisitorRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	v, verrs := req.ToModel(inmateID)
	if len(verrs) > 0 {
		return helper.JsonValidationError(c, verrs)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		return service.Log(tx, v)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Visitor logged", dto.FromModel(v))
}

// GET /api/visitors/:inmateId
func (ctrl *VisitorController) ByInmate(c *fiber.Ctx) error {
	inmateID, err := helper.ParseUUIDParam(c, "inmateId")
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := service.ByInmate(ctrl.DB.WithContext(c.UserContext()), inmateID, p.Offset, p.Limit)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "Visitors fetched", dto.FromModels(rows), &pg)
}

// GET /api/visitors/details/:visitorId
func (ctrl *VisitorController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "visitorId")
	if err != nil {
		return helper.FromError(c, err)
	}
	v, err := service.FindByID(ctrl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Visitor fetched", dto.FromModel(v))
}

// PUT /api/visitors/details/:visitorId
func (ctrl *VisitorController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "visitorId")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateVisitorRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	changes, verrs := req.ToChanges()
	if len(verrs) > 0 {
		return helper.JsonValidationError(c, verrs)
	}

	var updated *model.VisitorModel
	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = service.Update(tx, id, changes)
		return err
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Visitor updated", dto.FromModel(updated))
}
