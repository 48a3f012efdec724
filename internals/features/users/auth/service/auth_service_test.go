package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "prisonsphere_backend/internals/features/users/user/model"
	helperAuth "prisonsphere_backend/internals/helpers/auth"
	"prisonsphere_backend/internals/helpers/testdb"
)

const secret = "unit-test-secret"

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func TestLoginIssuesSignedToken(t *testing.T) {
	db := testdb.New(t)
	u, err := CreateUser(db, CreateUserInput{UserName: "warden1", Password: "s3cretpass", Role: "warden"})
	require.NoError(t, err)

	sess, err := Login(db, "Warden1", "s3cretpass", secret, now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)
	assert.Equal(t, now.Add(AccessTokenTTL), sess.ExpiresAt)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(sess.Token, claims, func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims["id"])
	assert.Equal(t, userModel.RoleWarden, claims["role"])
	assert.Equal(t, "warden1", claims["user_name"])
}

func TestLoginFailures(t *testing.T) {
	db := testdb.New(t)
	_, err := CreateUser(db, CreateUserInput{UserName: "admin1", Password: "s3cretpass", Role: "admin"})
	require.NoError(t, err)
	_, err = CreateUser(db, CreateUserInput{UserName: "gone", Password: "s3cretpass", Role: "admin", Inactive: true})
	require.NoError(t, err)

	_, err = Login(db, "admin1", "wrongpass1", secret, now)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Login(db, "nobody", "s3cretpass", secret, now)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Login(db, "gone", "s3cretpass", secret, now)
	assert.ErrorIs(t, err, ErrAccountDisabled)

	_, err = Login(db, "admin1", "s3cretpass", "", now)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLogoutBlacklistsUntilExpiry(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	u, err := CreateUser(db, CreateUserInput{UserName: "warden2", Password: "s3cretpass", Role: "warden"})
	require.NoError(t, err)
	tok, exp, err := IssueToken(u, secret, now)
	require.NoError(t, err)

	require.NoError(t, Logout(ctx, db, tok, secret, now, time.Hour))

	revoked, err := helperAuth.IsBlacklisted(ctx, db, tok, secret, exp)
	require.NoError(t, err)
	assert.True(t, revoked, "still revoked at the token's own expiry")

	revoked, err = helperAuth.IsBlacklisted(ctx, db, tok, secret, exp.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, Logout(ctx, db, "", secret, now, time.Hour), "logout without token is a no-op")
}

func TestUserAdministration(t *testing.T) {
	db := testdb.New(t)

	_, err := CreateUser(db, CreateUserInput{UserName: "ab", Password: "s3cretpass", Role: "warden"})
	assert.Error(t, err, "name too short")
	_, err = CreateUser(db, CreateUserInput{UserName: "valid", Password: "short1", Role: "warden"})
	assert.Error(t, err, "password too short")
	_, err = CreateUser(db, CreateUserInput{UserName: "valid", Password: "s3cretpass", Role: "guard"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	u, err := CreateUser(db, CreateUserInput{UserName: "valid", Password: "s3cretpass", Role: "Warden"})
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	_, err = CreateUser(db, CreateUserInput{UserName: "valid", Password: "s3cretpass", Role: "admin"})
	assert.ErrorIs(t, err, ErrUserExists)

	inactive := false
	role := "admin"
	updated, err := UpdateUser(db, "valid", UpdateUserInput{Active: &inactive, Role: &role})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "admin", updated.Role)

	_, err = UpdateUser(db, "valid", UpdateUserInput{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
	_, err = UpdateUser(db, "missing", UpdateUserInput{Active: &inactive})
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, ChangePassword(db, u.ID, "s3cretpass", "n3wpassword"))
	assert.ErrorIs(t, ChangePassword(db, u.ID, "s3cretpass", "other1234"), ErrWrongPassword)

	list, err := ListUsers(db)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, DeleteUser(db, "valid"))
	assert.ErrorIs(t, DeleteUser(db, "valid"), ErrUserNotFound)
}
