package service

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	paroleModel "prisonsphere_backend/internals/features/inmates/paroles/model"
	visitorModel "prisonsphere_backend/internals/features/inmates/visitors/model"
	activityModel "prisonsphere_backend/internals/features/programs/activity_logs/model"
	behaviorModel "prisonsphere_backend/internals/features/programs/behavior_logs/model"
	workModel "prisonsphere_backend/internals/features/programs/work_programs/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func TestLoadStats(t *testing.T) {
	db := testdb.New(t)
	a := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	testdb.Inmate(t, db, "INM002", inmateModel.StatusIncarcerated)
	b := testdb.Inmate(t, db, "INM003", inmateModel.StatusParole)
	testdb.Inmate(t, db, "INM004", inmateModel.StatusReleased)

	testdb.Parole(t, db, a, paroleModel.ParolePending, now.AddDate(0, 0, -1))
	testdb.Parole(t, db, b, paroleModel.ParoleApproved, now.AddDate(0, -2, 0))

	wp := testdb.WorkProgram(t, db, "Laundry")
	require.NoError(t, db.Create(&workModel.WorkProgramEnrollmentModel{
		EnrollmentInmateID:      a.InmateID,
		EnrollmentWorkProgramID: wp.WorkProgramID,
		EnrollmentStartDate:     now.AddDate(0, 0, -10),
		EnrollmentEndDate:       now.AddDate(0, 1, 0),
	}).Error)

	for _, at := range []time.Time{now.Add(-time.Hour), now.AddDate(0, 0, -3)} {
		require.NoError(t, db.Create(&visitorModel.VisitorModel{
			VisitorInmateID:        a.InmateID,
			VisitorName:            "Jane",
			VisitorRelationship:    "Sister",
			VisitorContactNumber:   "555-0100",
			VisitorVisitAt:         at,
			VisitorDurationMinutes: 30,
			VisitorPurpose:         "Family",
		}).Error)
	}

	s, err := LoadStats(db, now)
	require.NoError(t, err)
	want := Stats{
		TotalInmates:      4,
		Incarcerated:      2,
		OnParole:          1,
		Released:          1,
		PendingParoles:    1,
		UpcomingHearings:  1,
		ActiveEnrollments: 1,
		VisitsToday:       1,
		TotalVisits:       2,
	}
	if diff := cmp.Diff(want, *s); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAnalytics(t *testing.T) {
	db := testdb.New(t)
	a := testdb.Inmate(t, db, "INM001", inmateModel.StatusIncarcerated)
	b := testdb.Inmate(t, db, "INM002", inmateModel.StatusIncarcerated)
	require.NoError(t, db.Model(a).Update("inmate_admission_date", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)).Error)
	require.NoError(t, db.Model(b).Update("inmate_admission_date", time.Date(2023, 7, 20, 0, 0, 0, 0, time.UTC)).Error)
	// older than the window
	testdb.Inmate(t, db, "INM003", inmateModel.StatusReleased)

	testdb.Parole(t, db, a, paroleModel.ParoleDenied, now.AddDate(0, -1, 0))

	require.NoError(t, db.Create(&activityModel.ActivityLogModel{
		ActivityLogInmateID:    a.InmateID,
		ActivityLogType:        activityModel.ActivityEducation,
		ActivityLogDescription: "class",
		ActivityLogDate:        now,
	}).Error)

	wp := testdb.WorkProgram(t, db, "Kitchen")
	enr := &workModel.WorkProgramEnrollmentModel{
		EnrollmentInmateID:      a.InmateID,
		EnrollmentWorkProgramID: wp.WorkProgramID,
		EnrollmentStartDate:     now.AddDate(0, -1, 0),
		EnrollmentEndDate:       now.AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(enr).Error)
	require.NoError(t, db.Create(&behaviorModel.BehaviorLogModel{
		BehaviorLogInmateID:        a.InmateID,
		BehaviorLogEnrollmentID:    enr.EnrollmentID,
		BehaviorLogWorkEthic:       4,
		BehaviorLogCooperation:     5,
		BehaviorLogSocialSkills:    3,
		BehaviorLogIncidentReports: 1,
		BehaviorLogDate:            now,
	}).Error)

	out, err := LoadAnalytics(db, now)
	require.NoError(t, err)

	require.Len(t, out.MonthlyAdmissions, AnalyticsMonths)
	assert.Equal(t, MonthCount{Month: "2023-07", Count: 1}, out.MonthlyAdmissions[0])
	assert.Equal(t, MonthCount{Month: "2024-06", Count: 1}, out.MonthlyAdmissions[11])
	var total int64
	for _, m := range out.MonthlyAdmissions {
		total += m.Count
	}
	assert.EqualValues(t, 2, total)

	assert.Equal(t, map[string]int64{"Pending": 0, "Approved": 0, "Denied": 1}, out.ParoleOutcomes)
	assert.EqualValues(t, 1, out.ActivityDistribution[activityModel.ActivityEducation])
	assert.EqualValues(t, 0, out.ActivityDistribution[activityModel.ActivityConflict])
	assert.Equal(t, BehaviorAverages{WorkEthic: 4, Cooperation: 5, SocialSkills: 3, IncidentReports: 1, LogCount: 1}, out.BehaviorAverages)
}

func TestAnalyticsEmpty(t *testing.T) {
	db := testdb.New(t)
	out, err := LoadAnalytics(db, now)
	require.NoError(t, err)
	assert.Len(t, out.MonthlyAdmissions, AnalyticsMonths)
	assert.Zero(t, out.BehaviorAverages.LogCount)
	assert.Zero(t, out.BehaviorAverages.WorkEthic)
}

func TestMonthBucketsCrossYear(t *testing.T) {
	m := monthBuckets(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), 3)
	got := []string{m[0].Format("2006-01"), m[1].Format("2006-01"), m[2].Format("2006-01")}
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, got)
}
