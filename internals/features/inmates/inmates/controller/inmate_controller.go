package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/constants"
	"prisonsphere_backend/internals/features/inmates/inmates/dto"
	"prisonsphere_backend/internals/features/inmates/inmates/model"
	"prisonsphere_backend/internals/features/inmates/inmates/service"
	helper "prisonsphere_backend/internals/helpers"
	"prisonsphere_backend/internals/helpers/dbtime"
	helperOSS "prisonsphere_backend/internals/helpers/oss"
)

const profileImagePrefix = "inmates/profile"

type InmateController struct {
	DB    *gorm.DB
	Store helperOSS.ObjectStore
	Now   dbtime.Clock
}

// NewInmateController wires the controller; store may be nil when object
// storage is not configured, which disables image uploads.
func NewInmateController(db *gorm.DB, store helperOSS.ObjectStore) *InmateController {
	return &InmateController{DB: db, Store: store, Now: dbtime.SystemClock}
}

func (ctrl *InmateController) db(c *fiber.Ctx) *gorm.DB {
	return ctrl.DB.WithContext(c.UserContext())
}

// POST /api/inmates (JSON or multipart)
func (ctrl *InmateController) Create(c *fiber.Ctx) error {
	var req dto.CreateInmateRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	inmate, verrs := req.ToModel(ctrl.Now())
	if len(verrs) > 0 {
		return helper.JsonValidationError(c, verrs)
	}

	if fh := formFile(c, "profile_image"); fh != nil {
		url, err := ctrl.uploadProfile(c, fh)
		if err != nil {
			return helper.FromError(c, err)
		}
		inmate.InmateProfileImageURL = &url
	}

	if err := ctrl.db(c).Transaction(func(tx *gorm.DB) error {
		return service.Register(tx, inmate)
	}); err != nil {
		return helper.FromError(c, err)
	}

	zap.L().Info("inmate registered", zap.String("inmate_code", inmate.InmateCode))
	return helper.JsonCreated(c, "Inmate registered successfully", dto.FromModel(inmate))
}

// GET /api/inmates?status=&page=&per_page=
func (ctrl *InmateController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.db(c).Model(&model.InmateModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.IsValidStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status filter")
		}
		q = q.Where("inmate_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}

	var rows []model.InmateModel
	if err := q.Order("inmate_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "Inmates fetched", dto.FromModels(rows), &pg)
}

// GET /api/inmates/:id
func (ctrl *InmateController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	inmate, err := service.FindByID(ctrl.db(c), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Inmate fetched", dto.FromModel(inmate))
}

// PUT /api/inmates/:id
func (ctrl *InmateController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateInmateRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	changes, verrs := req.ToChanges()
	if len(verrs) > 0 {
		return helper.JsonValidationError(c, verrs)
	}

	var updated *model.InmateModel
	if err := ctrl.db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = service.Update(tx, id, changes)
		return err
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Inmate updated", dto.FromModel(updated))
}

// PUT /api/inmates/:id/status
func (ctrl *InmateController) ChangeStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.ChangeStatusRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	return ctrl.changeStatus(c, id, req.Status)
}

// DELETE /api/inmates/:id releases the inmate; records are never removed.
func (ctrl *InmateController) Release(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctrl.changeStatus(c, id, model.StatusReleased)
}

func (ctrl *InmateController) changeStatus(c *fiber.Ctx, id uuid.UUID, target string) error {
	var (
		inmate  *model.InmateModel
		changed bool
	)
	if err := ctrl.db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		inmate, changed, err = service.ChangeStatus(tx, id, target)
		return err
	}); err != nil {
		return helper.FromError(c, err)
	}

	msg := "Inmate status updated to " + target
	if !changed {
		msg = "Inmate is already " + target
	}
	return helper.JsonUpdated(c, msg, dto.FromModel(inmate))
}

// GET /api/inmates/next-id
func (ctrl *InmateController) NextID(c *fiber.Ctx) error {
	code, err := service.PeekCode(ctrl.db(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Next inmate ID", fiber.Map{"next_inmate_id": code})
}

// GET /api/inmates/search?query=
func (ctrl *InmateController) Search(c *fiber.Ctx) error {
	rows, err := service.Search(ctrl.db(c), c.Query("query"), c.QueryInt("limit", 20))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Search results", dto.FromModels(rows), nil)
}

// GET /api/inmates/export
func (ctrl *InmateController) Export(c *fiber.Ctx) error {
	var rows []model.InmateModel
	if err := ctrl.db(c).Order("inmate_created_at ASC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	f, err := service.BuildWorkbook(rows)
	if err != nil {
		return helper.FromError(c, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inmates-`+ctrl.Now().Format("20060102")+`.xlsx"`)
	return c.Send(buf.Bytes())
}

// POST /api/inmates/:id/profile-image (multipart "profile_image")
func (ctrl *InmateController) UploadProfileImage(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	fh := formFile(c, "profile_image")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "profile_image file is required")
	}
	if _, err := service.FindByID(ctrl.db(c), id); err != nil {
		return helper.FromError(c, err)
	}

	url, err := ctrl.uploadProfile(c, fh)
	if err != nil {
		return helper.FromError(c, err)
	}

	var inmate *model.InmateModel
	if err := ctrl.db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		inmate, err = service.Update(tx, id, map[string]any{"inmate_profile_image_url": url})
		return err
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Profile image updated", dto.FromModel(inmate))
}

func (ctrl *InmateController) uploadProfile(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	if ctrl.Store == nil {
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "Image storage is not configured")
	}
	if constants.DetectFileKind(fh.Filename) != constants.FileKindImage {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (use jpg, png or webp)")
	}
	if fh.Size > helperOSS.MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image exceeds 5MB")
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, helperOSS.MaxUploadSize+1))
	if err != nil {
		return "", err
	}

	url, _, err := helperOSS.UploadImageAsWebP(c.UserContext(), ctrl.Store, data, fh.Filename, profileImagePrefix, helperOSS.DefaultWebPOptions())
	if errors.Is(err, helperOSS.ErrUnsupportedImage) {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (use jpg, png or webp)")
	}
	return url, err
}

func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
