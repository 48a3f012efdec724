package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	"prisonsphere_backend/internals/features/inmates/visitors/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

func visit(inmateID uuid.UUID, at time.Time) *model.VisitorModel {
	return &model.VisitorModel{
		VisitorInmateID:        inmateID,
		VisitorName:            "Jane Doe",
		VisitorRelationship:    "Sister",
		VisitorContactNumber:   "555-0100",
		VisitorVisitAt:         at,
		VisitorDurationMinutes: 30,
		VisitorPurpose:         "Family visit",
	}
}

func logVisit(db *gorm.DB, v *model.VisitorModel) error {
	return db.Transaction(func(tx *gorm.DB) error { return Log(tx, v) })
}

func TestLogRequiresIncarceratedInmate(t *testing.T) {
	db := testdb.New(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, status := range []string{inmateModel.StatusParole, inmateModel.StatusReleased} {
		in := testdb.Inmate(t, db, "V-"+status, status)
		err := logVisit(db, visit(in.InmateID, at))
		require.Error(t, err)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	}

	var n int64
	require.NoError(t, db.Model(&model.VisitorModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestLogUnknownInmate(t *testing.T) {
	db := testdb.New(t)
	err := logVisit(db, visit(uuid.New(), time.Now()))
	assert.ErrorIs(t, err, inmateService.ErrInmateNotFound)
}

func TestLogListAndUpdate(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	first := visit(in.InmateID, base)
	second := visit(in.InmateID, base.Add(48*time.Hour))
	require.NoError(t, logVisit(db, first))
	require.NoError(t, logVisit(db, second))

	rows, total, err := ByInmate(db, in.InmateID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, second.VisitorID, rows[0].VisitorID)

	other := uuid.New()
	updated, err := Update(db, first.VisitorID, map[string]any{
		"visitor_purpose":   "Legal counsel",
		"visitor_inmate_id": other,
	})
	require.NoError(t, err)
	assert.Equal(t, "Legal counsel", updated.VisitorPurpose)
	assert.Equal(t, in.InmateID, updated.VisitorInmateID)

	_, err = Update(db, uuid.New(), map[string]any{"visitor_purpose": "x"})
	assert.ErrorIs(t, err, ErrVisitorNotFound)
}
