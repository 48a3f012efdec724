package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	"prisonsphere_backend/internals/features/programs/activity_logs/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

func TestCreateAndList(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	other := testdb.Inmate(t, db, "INM002", inmateModel.StatusReleased)
	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

	_, err := Create(db, in.InmateID, model.ActivityCounseling, "  weekly session ", base)
	require.NoError(t, err)
	_, err = Create(db, in.InmateID, model.ActivityEducation, "GED class", base.Add(time.Hour))
	require.NoError(t, err)
	_, err = Create(db, other.InmateID, model.ActivityCounseling, "exit counseling", base)
	require.NoError(t, err)

	rows, total, err := List(db, ListFilter{InmateID: &in.InmateID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, model.ActivityEducation, rows[0].ActivityLogType)
	assert.Equal(t, "weekly session", rows[1].ActivityLogDescription)

	_, total, err = List(db, ListFilter{Type: model.ActivityCounseling})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	counts, err := TypeCounts(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[model.ActivityCounseling])
	assert.EqualValues(t, 1, counts[model.ActivityEducation])
	assert.EqualValues(t, 0, counts[model.ActivityHealthSession])
}

func TestCreateUnknownInmate(t *testing.T) {
	db := testdb.New(t)
	_, err := Create(db, uuid.New(), model.ActivityRecreation, "yard", time.Now())
	assert.ErrorIs(t, err, inmateService.ErrInmateNotFound)
}
