package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/configs"
	authService "prisonsphere_backend/internals/features/users/auth/service"
	"prisonsphere_backend/internals/helpers/testdb"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = "" })

	db := testdb.New(t)
	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	SetupRoutes(app, Deps{DB: db})
	return app, db
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, db *gorm.DB, name, role string) string {
	t.Helper()
	_, err := authService.CreateUser(db, authService.CreateUserInput{UserName: name, Password: "passw0rd1", Role: role})
	require.NoError(t, err)

	status, env := do(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"user_name": name, "password": "passw0rd1",
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	var sess struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &sess))
	require.NotEmpty(t, sess.AccessToken)
	return sess.AccessToken
}

func TestInmateParoleFlow(t *testing.T) {
	app, db := newTestApp(t)
	token := login(t, app, db, "warden1", "warden")

	status, env := do(t, app, http.MethodPost, "/api/inmates", token, map[string]any{
		"first_name":        "John",
		"last_name":         "Doe",
		"date_of_birth":     "1990-05-01",
		"gender":            "Male",
		"sentence_duration": 24,
		"crime_details":     "Burglary",
		"assigned_cell":     "B-12",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var inmate struct {
		ID       string `json:"id"`
		InmateID string `json:"inmate_id"`
		Status   string `json:"status"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &inmate))
	assert.Equal(t, "INM001", inmate.InmateID)
	assert.Equal(t, "Incarcerated", inmate.Status)

	hearing := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	status, env = do(t, app, http.MethodPost, "/api/paroles", token, map[string]any{
		"inmate_id": inmate.ID, "hearing_date": hearing,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var parole struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &parole))
	assert.Equal(t, "Pending", parole.Status)

	status, env = do(t, app, http.MethodPost, "/api/paroles", token, map[string]any{
		"inmate_id": inmate.ID, "hearing_date": hearing,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "pending")

	status, env = do(t, app, http.MethodPut, "/api/paroles/"+parole.ID, token, map[string]any{"status": "Approved"})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = do(t, app, http.MethodGet, "/api/inmates/"+inmate.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, sonic.Unmarshal(env.Data, &inmate))
	assert.Equal(t, "Parole", inmate.Status)

	status, env = do(t, app, http.MethodPut, "/api/paroles/"+parole.ID, token, map[string]any{"status": "Denied"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Inmate is already on parole", env.Message)

	status, env = do(t, app, http.MethodPost, "/api/paroles", token, map[string]any{
		"inmate_id": inmate.ID, "hearing_date": hearing,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "only incarcerated inmates are eligible")

	status, _ = do(t, app, http.MethodGet, "/api/recent-activities", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthGuards(t *testing.T) {
	app, db := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/inmates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodGet, "/api/inmates", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodGet, "/api/paroles/upcoming", "", nil)
	assert.Equal(t, http.StatusOK, status)

	admin := login(t, app, db, "clerk1", "admin")
	status, _ = do(t, app, http.MethodGet, "/api/inmates", admin, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env := do(t, app, http.MethodPost, "/api/inmates", admin, map[string]any{"first_name": "X"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only wardens may manage inmate records.", env.Message)

	status, _ = do(t, app, http.MethodGet, "/api/auth/logout", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	status, env = do(t, app, http.MethodGet, "/api/inmates", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, env.Message, "revoked")
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionCheck(t *testing.T) {
	app, db := newTestApp(t)

	type session struct {
		LoggedIn bool `json:"logged_in"`
		User     struct {
			UserName string `json:"user_name"`
			Role     string `json:"role"`
		} `json:"user"`
	}

	status, env := do(t, app, http.MethodGet, "/api/auth/login", "", nil)
	require.Equal(t, http.StatusOK, status)
	var anon session
	require.NoError(t, sonic.Unmarshal(env.Data, &anon))
	assert.False(t, anon.LoggedIn)

	status, env = do(t, app, http.MethodGet, "/api/auth/login", "garbage", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, sonic.Unmarshal(env.Data, &anon))
	assert.False(t, anon.LoggedIn)

	token := login(t, app, db, "warden1", "warden")
	status, env = do(t, app, http.MethodGet, "/api/auth/login", token, nil)
	require.Equal(t, http.StatusOK, status)
	var active session
	require.NoError(t, sonic.Unmarshal(env.Data, &active))
	assert.True(t, active.LoggedIn)
	assert.Equal(t, "warden1", active.User.UserName)
	assert.Equal(t, "warden", active.User.Role)
}

func TestUnknownAPIPathIsNotFound(t *testing.T) {
	app, db := newTestApp(t)

	status, env := do(t, app, http.MethodGet, "/api/no-such-resource", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", env.Message)

	token := login(t, app, db, "warden1", "warden")
	status, _ = do(t, app, http.MethodGet, "/api/no-such-resource", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, "/api/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
