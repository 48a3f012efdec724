package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	"prisonsphere_backend/internals/features/programs/behavior_logs/model"
	workModel "prisonsphere_backend/internals/features/programs/work_programs/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

func upsert(db *gorm.DB, in UpsertInput) (*model.BehaviorLogModel, bool, error) {
	var (
		log     *model.BehaviorLogModel
		created bool
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		log, created, err = Upsert(tx, in)
		return err
	})
	return log, created, err
}

func TestUpsertRequiresActiveEnrollment(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)

	_, _, err := upsert(db, UpsertInput{InmateID: in.InmateID, WorkEthic: 3, Cooperation: 3, SocialSkills: 3, LogDate: time.Now()})
	assert.ErrorIs(t, err, ErrNoActiveEnrollment)
}

func TestUpsertOverwritesPerEnrollment(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	wp := testdb.WorkProgram(t, db, "Kitchen")
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	enrollment := &workModel.WorkProgramEnrollmentModel{
		EnrollmentInmateID:      in.InmateID,
		EnrollmentWorkProgramID: wp.WorkProgramID,
		EnrollmentStartDate:     start,
		EnrollmentEndDate:       start.Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(enrollment).Error)

	first, created, err := upsert(db, UpsertInput{InmateID: in.InmateID, WorkEthic: 2, Cooperation: 2, SocialSkills: 2, IncidentReports: 3, LogDate: start})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, enrollment.EnrollmentID, first.BehaviorLogEnrollmentID)

	second, created, err := upsert(db, UpsertInput{InmateID: in.InmateID, WorkEthic: 5, Cooperation: 4, SocialSkills: 4, LogDate: start.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.BehaviorLogID, second.BehaviorLogID)
	assert.Equal(t, 5, second.BehaviorLogWorkEthic)
	assert.Equal(t, 0, second.BehaviorLogIncidentReports)

	rows, err := List(db, ListFilter{InmateID: &in.InmateID})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
