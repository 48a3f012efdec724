package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	inmateService "prisonsphere_backend/internals/features/inmates/inmates/service"
	paroleModel "prisonsphere_backend/internals/features/inmates/paroles/model"
	behaviorModel "prisonsphere_backend/internals/features/programs/behavior_logs/model"
	workModel "prisonsphere_backend/internals/features/programs/work_programs/model"
	"prisonsphere_backend/internals/features/reports/reports/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

var now = time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T) (*gorm.DB, *inmateModel.InmateModel) {
	t.Helper()
	db := testdb.New(t)
	in := testdb.Inmate(t, db, "INM007", inmateModel.StatusIncarcerated)
	testdb.Parole(t, db, in, paroleModel.ParoleDenied, now.AddDate(0, -3, 0))

	wp := testdb.WorkProgram(t, db, "Carpentry")
	enr := &workModel.WorkProgramEnrollmentModel{
		EnrollmentInmateID:      in.InmateID,
		EnrollmentWorkProgramID: wp.WorkProgramID,
		EnrollmentStartDate:     now.AddDate(0, -2, 0),
		EnrollmentEndDate:       now.AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(enr).Error)
	require.NoError(t, db.Create(&behaviorModel.BehaviorLogModel{
		BehaviorLogInmateID:        in.InmateID,
		BehaviorLogEnrollmentID:    enr.EnrollmentID,
		BehaviorLogWorkEthic:       4,
		BehaviorLogCooperation:     4,
		BehaviorLogSocialSkills:    3,
		BehaviorLogIncidentReports: 1,
		BehaviorLogDate:            now,
	}).Error)
	return db, in
}

func TestBuildInmateReport(t *testing.T) {
	db, in := seed(t)

	r, err := BuildInmateReport(db, in.InmateID, now)
	require.NoError(t, err)
	assert.Equal(t, "INM007", r.Inmate.InmateID)
	assert.Len(t, r.Paroles, 1)
	require.Len(t, r.Enrollments, 1)
	require.NotNil(t, r.Enrollments[0].WorkProgram)
	assert.Equal(t, "Carpentry", r.Enrollments[0].WorkProgram.Name)
	assert.Len(t, r.BehaviorLogs, 1)
	assert.Empty(t, r.Visitors)
	assert.Empty(t, r.ActivityLogs)

	// ((4 + 4) / 10) * 100 - 5 * 1
	assert.InDelta(t, 75.0, r.Rehabilitation.Score, 0.001)
	assert.Equal(t, "Moderately Rehabilitated", r.Rehabilitation.Label)

	_, err = BuildInmateReport(db, uuid.New(), now)
	assert.ErrorIs(t, err, inmateService.ErrInmateNotFound)
}

func TestArchiveStoresSnapshot(t *testing.T) {
	db, in := seed(t)
	author := uuid.New()

	rep, err := Archive(db, KindRehabStatus, in.InmateID, author, now)
	require.NoError(t, err)
	assert.Equal(t, model.ReportTypeRehabStatus, rep.ReportType)
	assert.Equal(t, "Rehabilitation Status Report - INM007", rep.ReportTitle)
	assert.Equal(t, author, rep.ReportCreatedBy)

	var details map[string]any
	require.NoError(t, sonic.Unmarshal(rep.ReportDetails, &details))
	assert.Contains(t, details, "rehabilitation")
	assert.NotContains(t, details, "visitors")

	info, err := Archive(db, KindInmateInfo, in.InmateID, author, now)
	require.NoError(t, err)
	assert.Equal(t, "Inmate Information Report - INM007", info.ReportTitle)

	_, err = Archive(db, "summary", in.InmateID, author, now)
	assert.ErrorIs(t, err, ErrUnknownReportType)

	rows, total, err := List(db, ListFilter{Type: model.ReportTypeInmateInfo})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, info.ReportID, rows[0].ReportID)

	var feed recentModel.RecentActivityLogModel
	require.NoError(t, db.Where("recent_activity_type = ?", recentModel.ActivityReportGenerated).First(&feed).Error)
	assert.Equal(t, 2, feed.RecentActivityCount)

	got, err := FindByID(db, rep.ReportID)
	require.NoError(t, err)
	assert.Equal(t, rep.ReportTitle, got.ReportTitle)
	_, err = FindByID(db, uuid.New())
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestRenderPDF(t *testing.T) {
	db, in := seed(t)
	r, err := BuildInmateReport(db, in.InmateID, now)
	require.NoError(t, err)

	for _, kind := range []string{KindInmateInfo, KindRehabStatus} {
		var buf bytes.Buffer
		require.NoError(t, RenderPDF(&buf, r, kind), kind)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), kind)
	}

	var buf bytes.Buffer
	assert.ErrorIs(t, RenderPDF(&buf, r, "other"), ErrUnknownReportType)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	long := "a very long description that will not fit in the column"
	got := truncate(long, 20)
	assert.Len(t, []rune(got), 11)
	assert.True(t, len(got) < len(long))
}
