package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"hospital-management/internal/config"
	"hospital-management/internal/middleware"
	"hospital-management/internal/models"
	"hospital-management/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	router http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.NewTestDB(t)
	sessions, _ := testutil.NewTestStore(t)

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Appointments: config.AppointmentConfig{
			ConflictPolicy: config.ConflictPolicyReject,
			SlotDayStart:   "09:00",
			SlotDayEnd:     "12:00",
			SlotMinutes:    60,
		},
	}
	srv := New(cfg, db, sessions, zap.NewNop())
	return &testApp{t: t, db: db, router: srv.Router}
}

func (a *testApp) request(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (a *testApp) login(identifier string) string {
	a.t.Helper()
	w, env := a.request(http.MethodPost, "/auth/login", "", gin.H{"identifier": identifier, "password": testutil.Password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &resp))
	return resp.Token
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w, env := app.request(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestRegisterLoginFlow(t *testing.T) {
	app := newTestApp(t)

	w, env := app.request(http.MethodPost, "/auth/register", "", gin.H{
		"username":         "jdoe",
		"email":            "jdoe@example.com",
		"password":         "password123",
		"confirm_password": "password999",
		"first_name":       "John",
		"last_name":        "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Passwords do not match", env.Error)

	w, env = app.request(http.MethodPost, "/auth/register", "", gin.H{
		"username":         "jdoe",
		"email":            "jdoe@example.com",
		"password":         "password123",
		"confirm_password": "password123",
		"first_name":       "John",
		"last_name":        "Doe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `"/login"`, string(mustField(t, env.Data, "redirect")))

	w, env = app.request(http.MethodPost, "/auth/login", "", gin.H{"username": "jdoe", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username/email or password", env.Error)

	w, env = app.request(http.MethodPost, "/auth/login", "", gin.H{"email": "jdoe@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"/patient/dashboard"`, string(mustField(t, env.Data, "redirect")))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	token := app.login("jdoe")
	w, env = app.request(http.MethodGet, "/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"patient"`, string(mustField(t, env.Data, "role")))

	w, _ = app.request(http.MethodGet, "/super-admin/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = app.request(http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = app.request(http.MethodGet, "/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingOverHTTP(t *testing.T) {
	app := newTestApp(t)
	f := testutil.Seed(t, app.db, "a")
	other := testutil.Seed(t, app.db, "b")
	patient := app.login("apat")
	admin := app.login("badmin")

	booking := gin.H{
		"doctor_id":        f.Doctor.ID,
		"hospital_id":      f.Hospital.ID,
		"department_id":    f.Department.ID,
		"appointment_date": "2099-01-05",
		"appointment_time": "10:00",
	}
	w, env := app.request(http.MethodPost, "/appointments", patient, booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appt models.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &appt))
	assert.Equal(t, "primary", appt.Badge)

	w, _ = app.request(http.MethodPost, "/appointments", patient, booking)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = app.request(http.MethodGet, "/doctors/"+itoa(f.Doctor.ID)+"/slots?date=2099-01-05", patient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slots []struct {
		Time      string `json:"time"`
		Available bool   `json:"available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &slots))
	require.Len(t, slots, 3)
	assert.False(t, slots[1].Available)

	w, _ = app.request(http.MethodGet, "/appointments/"+itoa(appt.ID), admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = app.request(http.MethodGet, "/hospitals/"+itoa(f.Hospital.ID)+"/admins", admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = app.request(http.MethodGet, "/hospitals/"+itoa(other.Hospital.ID)+"/admins", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = app.request(http.MethodPatch, "/appointments/"+itoa(appt.ID)+"/status", patient, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &appt))
	assert.Equal(t, models.StatusCancelled, appt.Status)
	assert.Equal(t, "danger", appt.Badge)

	w, env = app.request(http.MethodPatch, "/appointments/"+itoa(appt.ID)+"/status", patient, gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, env.Error)

	w, _ = app.request(http.MethodGet, "/appointments/abc", patient, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpoint(t *testing.T) {
	app := newTestApp(t)
	w, _ := app.request(http.MethodPost, "/chat", "", gin.H{"message": "How do I book an APPOINTMENT?"})
	require.Equal(t, http.StatusOK, w.Code)

	var reply struct {
		Response string `json:"response"`
		Actions  []struct {
			Label string `json:"label"`
			URL   string `json:"url"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.NotEmpty(t, reply.Response)
	assert.NotEmpty(t, reply.Actions)
}

func mustField(t *testing.T, raw json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	value, ok := fields[key]
	require.True(t, ok, "missing field %q", key)
	return value
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
