package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prisonsphere_backend/internals/features/home/recent_activities/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

var base = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestRecordCoalescesWithinAnHour(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, RecordAt(db, model.ActivityVisitorLogged, base))
	require.NoError(t, RecordAt(db, model.ActivityVisitorLogged, base.Add(59*time.Minute)))

	var rows []model.RecentActivityLogModel
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].RecentActivityCount)
	assert.Equal(t, "2 visitors logged", rows[0].RecentActivityMessage)
	assert.True(t, rows[0].RecentActivityLastUpdated.Equal(base.Add(59*time.Minute)))
}

func TestRecordWindowIsRelativeToLastUpdate(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, RecordAt(db, model.ActivityParoleApproved, base))
	require.NoError(t, RecordAt(db, model.ActivityParoleApproved, base.Add(50*time.Minute)))
	// 100 minutes after the first entry but 50 after the refresh
	require.NoError(t, RecordAt(db, model.ActivityParoleApproved, base.Add(100*time.Minute)))
	// 61 minutes after the last refresh
	require.NoError(t, RecordAt(db, model.ActivityParoleApproved, base.Add(161*time.Minute)))

	var rows []model.RecentActivityLogModel
	require.NoError(t, db.Order("recent_activity_last_updated ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].RecentActivityCount)
	assert.Equal(t, 1, rows[1].RecentActivityCount)
	assert.Equal(t, "1 parole approved", rows[1].RecentActivityMessage)
}

func TestRecordKeepsTypesApart(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, RecordAt(db, model.ActivityVisitorLogged, base))
	require.NoError(t, RecordAt(db, model.ActivityInmateRegistered, base))

	var n int64
	require.NoError(t, db.Model(&model.RecentActivityLogModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestListReturnsLastDayNewestFirst(t *testing.T) {
	db := testdb.New(t)
	now := base.Add(30 * time.Hour)

	require.NoError(t, RecordAt(db, model.ActivityInmateRegistered, base))
	require.NoError(t, RecordAt(db, model.ActivityVisitorLogged, now.Add(-5*time.Hour)))
	require.NoError(t, RecordAt(db, model.ActivityBehaviorLogged, now.Add(-30*time.Second)))
	require.NoError(t, RecordAt(db, model.ActivityActivityLogged, now.Add(-10*time.Minute)))
	require.NoError(t, RecordAt(db, model.ActivityReportGenerated, now.Add(-61*time.Minute)))

	items, err := List(db, now)
	require.NoError(t, err)
	require.Len(t, items, 4)

	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.TimeAgo)
	}
	assert.Equal(t, []string{"just now", "a few minutes ago", "1 hour ago", "5 hours ago"}, got)
	assert.Equal(t, model.ActivityBehaviorLogged, items[0].RecentActivityType)
}

func TestPurgeDropsRowsOlderThanADay(t *testing.T) {
	db := testdb.New(t)
	now := base.Add(48 * time.Hour)

	require.NoError(t, RecordAt(db, model.ActivityVisitorLogged, base))
	require.NoError(t, RecordAt(db, model.ActivityVisitorLogged, now.Add(-time.Hour)))

	n, err := Purge(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left int64
	require.NoError(t, db.Model(&model.RecentActivityLogModel{}).Count(&left).Error)
	assert.EqualValues(t, 1, left)
}

func TestTimeAgo(t *testing.T) {
	cases := map[time.Duration]string{
		0:                 "just now",
		119 * time.Second: "just now",
		2 * time.Minute:   "a few minutes ago",
		59 * time.Minute:  "a few minutes ago",
		60 * time.Minute:  "1 hour ago",
		119 * time.Minute: "1 hour ago",
		3 * time.Hour:     "3 hours ago",
	}
	for d, want := range cases {
		assert.Equal(t, want, TimeAgo(base.Add(-d), base), d.String())
	}
}

func TestMessagePluralization(t *testing.T) {
	assert.Equal(t, "1 new inmate registered", Message(model.ActivityInmateRegistered, 1))
	assert.Equal(t, "4 new inmates registered", Message(model.ActivityInmateRegistered, 4))
	assert.Equal(t, "1 custom event", Message("custom", 1))
	assert.Equal(t, "2 custom events", Message("custom", 2))
}
