package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authService "prisonsphere_backend/internals/features/users/auth/service"
	"prisonsphere_backend/internals/helpers/testdb"
)

func run(t *testing.T, db *gorm.DB, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(func() (*gorm.DB, error) { return db, nil }, &out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestUserLifecycle(t *testing.T) {
	db := testdb.New(t)

	out, err := run(t, db, "user", "create", "warden1", "-p", "secret123", "-r", "warden")
	require.NoError(t, err)
	assert.Contains(t, out, "created warden1 (warden)")

	_, err = run(t, db, "user", "create", "warden1", "-p", "secret123")
	assert.ErrorIs(t, err, authService.ErrUserExists)

	out, err = run(t, db, "user", "update", "warden1", "--deactivate", "--role", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "updated warden1 (admin) active=false")

	out, err = run(t, db, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "USER")
	assert.Contains(t, out, "warden1")

	_, err = run(t, db, "user", "delete", "warden1")
	require.NoError(t, err)

	_, err = run(t, db, "user", "delete", "warden1")
	assert.ErrorIs(t, err, authService.ErrUserNotFound)
}

func TestUpdateRejectsConflictingFlags(t *testing.T) {
	db := testdb.New(t)
	_, err := run(t, db, "user", "update", "x", "--activate", "--deactivate")
	assert.Error(t, err)
}

func TestCreateRequiresPassword(t *testing.T) {
	db := testdb.New(t)
	_, err := run(t, db, "user", "create", "nopass")
	assert.Error(t, err)
}

func TestSeedLoadsUsersFile(t *testing.T) {
	db := testdb.New(t)
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"user_name":"admin1","password":"passw0rd1","role":"admin"}]`), 0o600))

	out, err := run(t, db, "seed", "--users", path)
	require.NoError(t, err)
	assert.Equal(t, "seeded\n", out)

	users, err := authService.ListUsers(db)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin1", users[0].UserName)
}
