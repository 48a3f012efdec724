package helper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "prisonsphere_backend/internals/features/users/auth/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

const secret = "test-secret"

func TestAddAndCheck(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ok, err := IsBlacklisted(ctx, db, "tok-a", secret, now)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Add(ctx, db, "tok-a", secret, now.Add(time.Hour)))
	ok, err = IsBlacklisted(ctx, db, "tok-a", secret, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsBlacklisted(ctx, db, "tok-a", secret, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "expired entries no longer block")

	ok, err = IsBlacklisted(ctx, db, "tok-b", secret, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddTwiceKeepsOneRow(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Add(ctx, db, "tok", secret, now.Add(time.Hour)))
	require.NoError(t, Add(ctx, db, "tok", secret, now.Add(3*time.Hour)))

	var rows []authModel.TokenBlacklist
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].Token, "tok", "raw token is never stored")
	assert.WithinDuration(t, now.Add(3*time.Hour), rows[0].ExpiredAt, time.Second)
}

func TestPurgeExpired(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Add(ctx, db, "old", secret, now.Add(-48*time.Hour)))
	require.NoError(t, Add(ctx, db, "fresh", secret, now.Add(time.Hour)))

	n, err := PurgeExpired(ctx, db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&left).Error)
	assert.EqualValues(t, 1, left)
}
