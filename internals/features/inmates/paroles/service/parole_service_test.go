package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	"prisonsphere_backend/internals/features/inmates/paroles/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func create(db *gorm.DB, inmateID uuid.UUID, hearing time.Time) (*model.ParoleModel, error) {
	var p *model.ParoleModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		p, err = Create(tx, CreateInput{InmateID: inmateID, HearingDate: hearing}, now)
		return err
	})
	return p, err
}

func decide(db *gorm.DB, id uuid.UUID, decision string) (*model.ParoleModel, error) {
	var p *model.ParoleModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		p, err = Decide(tx, DecideInput{ParoleID: id, Decision: decision}, now)
		return err
	})
	return p, err
}

func inmateStatus(t *testing.T, db *gorm.DB, id uuid.UUID) string {
	t.Helper()
	var in inmateModel.InmateModel
	require.NoError(t, db.Where("inmate_id = ?", id).First(&in).Error)
	return in.InmateStatus
}

func TestCreateDefaultsToPendingAndNow(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)

	p, err := create(db, in.InmateID, now.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.ParolePending, p.ParoleStatus)
	assert.True(t, p.ParoleApplicationDate.Equal(now))
}

func TestCreateRejectsPastHearing(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)

	_, err := create(db, in.InmateID, now)
	assert.ErrorIs(t, err, ErrHearingNotInFuture)
	_, err = create(db, in.InmateID, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrHearingNotInFuture)
}

func TestCreateAllowsOneOpenApplication(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)

	_, err := create(db, in.InmateID, now.Add(24*time.Hour))
	require.NoError(t, err)
	_, err = create(db, in.InmateID, now.Add(48*time.Hour))
	assert.ErrorIs(t, err, ErrPendingExists)
}

func TestCreateRequiresIncarceratedInmate(t *testing.T) {
	db := testdb.New(t)
	for _, status := range []string{inmateModel.StatusParole, inmateModel.StatusReleased} {
		in := testdb.Inmate(t, db, "X-"+status, status)
		_, err := create(db, in.InmateID, now.Add(24*time.Hour))
		require.Error(t, err, status)
	}
}

func TestApproveCascadesToInmate(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	p, err := create(db, in.InmateID, now.Add(24*time.Hour))
	require.NoError(t, err)

	decided, err := decide(db, p.ParoleID, model.ParoleApproved)
	require.NoError(t, err)
	assert.Equal(t, model.ParoleApproved, decided.ParoleStatus)
	require.NotNil(t, decided.ParoleDecidedAt)
	assert.Equal(t, inmateModel.StatusParole, inmateStatus(t, db, in.InmateID))

	var approvals int64
	require.NoError(t, db.Model(&recentModel.RecentActivityLogModel{}).
		Where("recent_activity_type = ?", recentModel.ActivityParoleApproved).Count(&approvals).Error)
	assert.EqualValues(t, 1, approvals)
}

func TestDenialRevertsEarlyParole(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	p, err := create(db, in.InmateID, now.Add(24*time.Hour))
	require.NoError(t, err)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, _, err := inmateService.ChangeStatus(tx, in.InmateID, inmateModel.StatusParole)
		return err
	}))
	require.Equal(t, inmateModel.StatusParole, inmateStatus(t, db, in.InmateID))

	decided, err := decide(db, p.ParoleID, model.ParoleDenied)
	require.NoError(t, err)
	assert.Equal(t, model.ParoleDenied, decided.ParoleStatus)
	assert.Equal(t, inmateModel.StatusIncarcerated, inmateStatus(t, db, in.InmateID))

	again, err := create(db, in.InmateID, now.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.ParolePending, again.ParoleStatus)
}

func TestDenialLeavesIncarceratedInmateAlone(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	p, err := create(db, in.InmateID, now.Add(24*time.Hour))
	require.NoError(t, err)

	_, err = decide(db, p.ParoleID, model.ParoleDenied)
	require.NoError(t, err)
	assert.Equal(t, inmateModel.StatusIncarcerated, inmateStatus(t, db, in.InmateID))
}

func TestDecisionIsFinal(t *testing.T) {
	db := testdb.New(t)

	t.Run("approved", func(t *testing.T) {
		in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
		p, err := create(db, in.InmateID, now.Add(24*time.Hour))
		require.NoError(t, err)
		_, err = decide(db, p.ParoleID, model.ParoleApproved)
		require.NoError(t, err)

		for _, d := range []string{model.ParoleApproved, model.ParoleDenied} {
			_, err = decide(db, p.ParoleID, d)
			assert.ErrorIs(t, err, ErrAlreadyOnParole)
		}
		got, err := FindByID(db, p.ParoleID)
		require.NoError(t, err)
		assert.Equal(t, model.ParoleApproved, got.ParoleStatus)
	})

	t.Run("denied", func(t *testing.T) {
		in := testdb.Inmate(t, db, "INM002", inmateModel.StatusIncarcerated)
		p, err := create(db, in.InmateID, now.Add(24*time.Hour))
		require.NoError(t, err)
		_, err = decide(db, p.ParoleID, model.ParoleDenied)
		require.NoError(t, err)
		assert.Equal(t, inmateModel.StatusIncarcerated, inmateStatus(t, db, in.InmateID))

		_, err = decide(db, p.ParoleID, model.ParoleApproved)
		assert.ErrorIs(t, err, ErrDecisionMade)
		assert.Equal(t, inmateModel.StatusIncarcerated, inmateStatus(t, db, in.InmateID))
	})
}

func TestDecideValidation(t *testing.T) {
	db := testdb.New(t)

	_, err := decide(db, uuid.New(), model.ParoleApproved)
	assert.ErrorIs(t, err, ErrParoleNotFound)

	_, err = decide(db, uuid.New(), model.ParolePending)
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestApproveFailsForReleasedInmate(t *testing.T) {
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	p, err := create(db, in.InmateID, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, db.Model(in).Update("inmate_status", inmateModel.StatusReleased).Error)

	_, err = decide(db, p.ParoleID, model.ParoleApproved)
	assert.ErrorIs(t, err, ErrInmateReleased)

	got, err := FindByID(db, p.ParoleID)
	require.NoError(t, err)
	assert.Equal(t, model.ParolePending, got.ParoleStatus)
}

func TestUpcoming(t *testing.T) {
	db := testdb.New(t)
	a := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	b := testdb.Inmate(t, db, "INM002", inmateModel.StatusIncarcerated)
	c := testdb.Inmate(t, db, "INM003", inmateModel.StatusIncarcerated)

	later, err := create(db, a.InmateID, now.Add(10*24*time.Hour))
	require.NoError(t, err)
	sooner, err := create(db, b.InmateID, now.Add(2*24*time.Hour))
	require.NoError(t, err)
	decidedOne, err := create(db, c.InmateID, now.Add(24*time.Hour))
	require.NoError(t, err)
	_, err = decide(db, decidedOne.ParoleID, model.ParoleDenied)
	require.NoError(t, err)

	rows, err := Upcoming(db, now, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sooner.ParoleID, rows[0].ParoleID)
	assert.Equal(t, later.ParoleID, rows[1].ParoleID)
	require.NotNil(t, rows[0].Inmate)
	assert.Equal(t, "INM002", rows[0].Inmate.InmateCode)
}
