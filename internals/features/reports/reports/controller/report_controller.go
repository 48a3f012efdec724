package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/reports/reports/dto"
	"prisonsphere_backend/internals/features/reports/reports/model"
	"prisonsphere_backend/internals/features/reports/reports/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
)

type ReportController struct {
	DB  *gorm.DB
	Now dbtime.Clock
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Now: dbtime.SystemClock}
}

// POST /api/reports/inmate-info/:id
func (ctrl *ReportController) CreateInmateInfo(c *fiber.Ctx) error {
	return ctrl.archive(c, service.KindInmateInfo)
}

// POST /api/reports/rehab-status/:id
func (ctrl *ReportController) CreateRehabStatus(c *fiber.Ctx) error {
	return ctrl.archive(c, service.KindRehabStatus)
}

func (ctrl *ReportController) archive(c *fiber.Ctx, kind string) error {
	inmateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var report *model.ReportModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		report, err = service.Archive(tx, kind, inmateID, userID, ctrl.Now())
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Report generated", dto.FromModel(report))
}

// GET /api/reports?type=&inmate_id=
func (ctrl *ReportController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	f := service.ListFilter{Offset: p.Offset, Limit: p.Limit}

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		if t != model.ReportTypeInmateInfo && t != model.ReportTypeRehabStatus {
			reportType, err := service.TypeForKind(t)
			if err != nil {
				return helper.FromError(c, err)
			}
			t = reportType
		}
		f.Type = t
	}
	if raw := strings.TrimSpace(c.Query("inmate_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid inmate_id")
		}
		f.InmateID = &id
	}

	rows, total, err := service.List(ctrl.DB.WithContext(c.UserContext()), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "Reports fetched", dto.FromModels(rows), &pg)
}

// GET /api/reports/:id
func (ctrl *ReportController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	r, err := service.FindByID(ctrl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Report fetched", dto.FromModel(r))
}

// GET /api/inmates/report/:id
func (ctrl *ReportController) InmateReport(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	r, err := service.BuildInmateReport(ctrl.DB.WithContext(c.UserContext()), id, ctrl.Now())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Inmate report fetched", r)
}

// GET /api/inmates/report/:id/pdf/:type
func (ctrl *ReportController) InmatePDF(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	kind := c.Params("type")
	if _, err := service.TypeForKind(kind); err != nil {
		return helper.FromError(c, err)
	}

	r, err := service.BuildInmateReport(ctrl.DB.WithContext(c.UserContext()), id, ctrl.Now())
	if err != nil {
		return helper.FromError(c, err)
	}

	var buf bytes.Buffer
	if err := service.RenderPDF(&buf, r, kind); err != nil {
		return helper.FromError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-%s.pdf"`, r.Inmate.InmateID, kind))
	return c.Send(buf.Bytes())
}
