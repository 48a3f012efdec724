package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/programs/work_programs/dto"
	"prisonsphere_backend/internals/features/programs/work_programs/model"
	"prisonsphere_backend/internals/features/programs/work_programs/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
)

type WorkProgramController struct {
	DB  *gorm.DB
	Now dbtime.Clock
}

func NewWorkProgramController(db *gorm.DB) *WorkProgramController {
	return &WorkProgramController{DB: db, Now: dbtime.SystemClock}
}

// GET /api/work-programs
func (ctrl *WorkProgramController) ListPrograms(c *fiber.Ctx) error {
	rows, err := service.ListPrograms(ctrl.DB.WithContext(c.UserContext()))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Work programs fetched", dto.FromPrograms(rows), nil)
}

// POST /api/work-programs
func (ctrl *WorkProgramController) CreateProgram(c *fiber.Ctx) error {
	var req dto.CreateWorkProgramRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	var wp *model.WorkProgramModel
	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		wp, err = service.CreateProgram(tx, req.Name, req.Description)
		return err
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Work program created", dto.FromProgram(wp))
}

// POST /api/work-programs/enroll
func (ctrl *WorkProgramController) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	start, err := dbtime.ParseOptionalDate(req.StartDate, ctrl.Now())
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"start_date": {"must be a valid date"}})
	}
	end, err := dbtime.ParseDate(req.EndDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"end_date": {"must be a valid date"}})
	}

	var e *model.WorkProgramEnrollmentModel
	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		e, err = service.Enroll(tx, service.EnrollInput{
			InmateID:  uuid.MustParse(req.InmateID),
			ProgramID: uuid.MustParse(req.WorkProgramID),
			StartDate: start,
			EndDate:   end,
		})
		return err
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Inmate enrolled in work program", dto.FromEnrollment(e))
}

// GET /api/work-programs/enrollments?status=
func (ctrl *WorkProgramController) ListEnrollments(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && status != model.EnrollmentActive && status != model.EnrollmentCompleted {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status filter")
	}

	rows, total, err := service.ListEnrollments(ctrl.DB.WithContext(c.UserContext()), service.EnrollmentFilter{
		Status: status, Offset: p.Offset, Limit: p.Limit,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "Enrollments fetched", dto.FromEnrollments(rows), &pg)
}

// GET /api/work-programs/enrollments/:id
func (ctrl *WorkProgramController) GetEnrollment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	e, err := service.FindEnrollment(ctrl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Enrollment fetched", dto.FromEnrollment(e))
}

// GET /api/work-programs/enrollments/inmate/:inmateId
func (ctrl *WorkProgramController) EnrollmentsByInmate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "inmateId")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, _, err := service.ListEnrollments(ctrl.DB.WithContext(c.UserContext()), service.EnrollmentFilter{InmateID: &id})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Enrollments fetched", dto.FromEnrollments(rows), nil)
}
