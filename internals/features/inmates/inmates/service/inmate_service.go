package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	recentService "prisonsphere_backend/internals/features/home/recent_activities/service"
	"prisonsphere_backend/internals/features/inmates/inmates/model"
	paroleModel "prisonsphere_backend/internals/features/inmates/paroles/model"
)

var (
	ErrInmateNotFound    = fiber.NewError(fiber.StatusNotFound, "Inmate not found")
	ErrInvalidStatus     = fiber.NewError(fiber.StatusBadRequest, "Invalid inmate status")
	ErrInmateReleased    = fiber.NewError(fiber.StatusBadRequest, "Released inmates cannot change status")
	ErrInvalidTransition = fiber.NewError(fiber.StatusBadRequest, "Status transition not allowed")
	ErrNoParoleRecord    = fiber.NewError(fiber.StatusBadRequest, "Inmate has no parole application")
	ErrParoleDenied      = fiber.NewError(fiber.StatusBadRequest, "Latest parole application was denied")
	ErrStatusNotEditable = fiber.NewError(fiber.StatusBadRequest, "Use the status endpoint to change inmate status")
	ErrEmptySearchQuery  = fiber.NewError(fiber.StatusBadRequest, "Search query is required")
)

// Register claims the next inmate code and inserts the inmate inside tx.
func Register(tx *gorm.DB, inmate *model.InmateModel) error {
	code, err := NextCode(tx)
	if err != nil {
		return err
	}
	inmate.InmateCode = code
	inmate.InmateStatus = model.StatusIncarcerated
	if err := tx.Create(inmate).Error; err != nil {
		return err
	}
	return recentService.Record(tx, recentModel.ActivityInmateRegistered)
}

func FindByID(db *gorm.DB, id uuid.UUID) (*model.InmateModel, error) {
	var inmate model.InmateModel
	if err := db.Where("inmate_id = ?", id).First(&inmate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInmateNotFound
		}
		return nil, err
	}
	return &inmate, nil
}

// LockByID loads the inmate with a row lock held until tx ends.
func LockByID(tx *gorm.DB, id uuid.UUID) (*model.InmateModel, error) {
	return FindByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// RequireIncarcerated locks the inmate and fails unless its status is exactly
// Incarcerated. Used by visitor logging and work-program assignment.
func RequireIncarcerated(tx *gorm.DB, id uuid.UUID) (*model.InmateModel, error) {
	inmate, err := LockByID(tx, id)
	if err != nil {
		return nil, err
	}
	if inmate.InmateStatus != model.StatusIncarcerated {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"Inmate "+inmate.InmateCode+" is "+inmate.InmateStatus+"; only incarcerated inmates are eligible")
	}
	return inmate, nil
}

/* =========================
   Status machine
========================= */

// CheckTransition validates current -> target. latestParole is the inmate's most
// recently filed parole application, nil when none exists.
func CheckTransition(current, target string, latestParole *paroleModel.ParoleModel) error {
	if !model.IsValidStatus(target) {
		return ErrInvalidStatus
	}
	if current == target {
		return nil
	}
	if current == model.StatusReleased {
		return ErrInmateReleased
	}

	switch target {
	case model.StatusReleased:
		return nil
	case model.StatusParole:
		if current != model.StatusIncarcerated {
			return ErrInvalidTransition
		}
		if latestParole == nil {
			return ErrNoParoleRecord
		}
		if latestParole.ParoleStatus == paroleModel.ParoleDenied {
			return ErrParoleDenied
		}
		return nil
	default:
		return ErrInvalidTransition
	}
}

func LatestParole(db *gorm.DB, inmateID uuid.UUID) (*paroleModel.ParoleModel, error) {
	var p paroleModel.ParoleModel
	err := db.Where("parole_inmate_id = ?", inmateID).
		Order("parole_created_at DESC").
		Order("parole_application_date DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangeStatus applies a guarded transition. changed is false for a no-op, in
// which case nothing is written and no feed entry is recorded.
func ChangeStatus(tx *gorm.DB, id uuid.UUID, target string) (*model.InmateModel, bool, error) {
	inmate, err := LockByID(tx, id)
	if err != nil {
		return nil, false, err
	}

	var latest *paroleModel.ParoleModel
	if target == model.StatusParole && inmate.InmateStatus != target {
		if latest, err = LatestParole(tx, id); err != nil {
			return nil, false, err
		}
	}
	if err := CheckTransition(inmate.InmateStatus, target, latest); err != nil {
		return nil, false, err
	}
	if inmate.InmateStatus == target {
		return inmate, false, nil
	}

	if err := tx.Model(inmate).Update("inmate_status", target).Error; err != nil {
		return nil, false, err
	}
	inmate.InmateStatus = target

	activity := recentModel.ActivityInmateStatusChanged
	if target == model.StatusReleased {
		activity = recentModel.ActivityInmateReleased
	}
	if err := recentService.Record(tx, activity); err != nil {
		return nil, false, err
	}
	return inmate, true, nil
}

/* =========================
   Edit / search
========================= */

// Update writes editable fields. Status and code are not editable here.
func Update(tx *gorm.DB, id uuid.UUID, changes map[string]any) (*model.InmateModel, error) {
	if _, ok := changes["inmate_status"]; ok {
		return nil, ErrStatusNotEditable
	}
	delete(changes, "inmate_code")

	inmate, err := LockByID(tx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return inmate, nil
	}
	if err := tx.Model(inmate).Updates(changes).Error; err != nil {
		return nil, err
	}
	if err := recentService.Record(tx, recentModel.ActivityInmateUpdated); err != nil {
		return nil, err
	}
	return FindByID(tx, id)
}

// NormalizeQuery folds compatibility forms (full-width digits, ligatures) and case.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(q)))
}

// Search matches code, first, last or full name, case-insensitively.
func Search(db *gorm.DB, query string, limit int) ([]model.InmateModel, error) {
	q := NormalizeQuery(query)
	if q == "" {
		return nil, ErrEmptySearchQuery
	}
	if limit <= 0 {
		limit = 20
	}
	like := "%" + escapeLike(q) + "%"

	var out []model.InmateModel
	err := db.
		Where(`LOWER(inmate_code) LIKE ? ESCAPE '\'
			OR LOWER(inmate_first_name) LIKE ? ESCAPE '\'
			OR LOWER(inmate_last_name) LIKE ? ESCAPE '\'
			OR LOWER(inmate_first_name || ' ' || inmate_last_name) LIKE ? ESCAPE '\'`,
			like, like, like, like).
		Order("inmate_created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
