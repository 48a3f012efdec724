package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FromError turns a service/transaction error into the standard JSON error shape.
// *fiber.Error keeps its code and message; anything unexpected becomes a generic 500
// and the cause is only logged.
func FromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, "Record not found")
	case IsUniqueViolation(err):
		return JsonError(c, fiber.StatusConflict, "Record already exists")
	}

	zap.L().Error("unhandled error",
		zap.String("method", c.Method()),
		zap.String("path", c.OriginalURL()),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// IsUniqueViolation recognizes duplicate-key failures from gorm's translated errors
// and from raw pgx errors (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
