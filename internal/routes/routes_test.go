package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/config"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/metrics"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/testutil"
)

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestApp(t *testing.T, burst int) *testApp {
	gin.SetMode(gin.TestMode)
	gdb := testutil.NewDB(t)

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		Timezone:        "UTC",
		LoginRatePerSec: 0.001,
		LoginRateBurst:  burst,
		Policy:          laundry.DefaultPolicy(),
	}

	r := gin.New()
	RegisterRoutes(r, Deps{DB: gdb, Config: cfg, Metrics: metrics.New()})

	testutil.CreateUser(t, gdb, "staff", true)
	testutil.CreateUser(t, gdb, "alice", false)
	testutil.CreateUser(t, gdb, "bob", false)

	return &testApp{t: t, db: gdb, router: r}
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(username string) string {
	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": "secret"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type idBody struct {
	ID uint `json:"id"`
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t, 10)

	for _, path := range []string{"/api/slots", "/api/staff/washers", "/api/me"} {
		w := app.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login?next="+url.QueryEscape(path), w.Header().Get("Location"))
	}

	w := app.do(http.MethodGet, "/login?next=/api/slots", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t, 10)

	w := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode[errorBody](t, w).Code)

	w = app.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "ghost", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	app := newTestApp(t, 1)

	app.login("alice")

	w := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSessionCookieAuthenticates(t *testing.T) {
	app := newTestApp(t, 10)

	w := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[struct {
		Role string `json:"role"`
	}](t, rec)
	assert.Equal(t, "user", me.Role)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t, 10)
	token := app.login("alice")

	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/me", token, nil).Code)
	require.Equal(t, http.StatusNoContent, app.do(http.MethodPost, "/api/auth/logout", token, nil).Code)

	assert.Equal(t, http.StatusFound, app.do(http.MethodGet, "/api/me", token, nil).Code)
}

func TestUserCannotReachStaffRoutes(t *testing.T) {
	app := newTestApp(t, 10)
	token := app.login("alice")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/staff/washers"},
		{http.MethodPost, "/api/staff/slots"},
		{http.MethodGet, "/api/staff/users"},
		{http.MethodGet, "/api/staff/reservations"},
		{http.MethodPatch, "/api/staff/reservations/1/presence"},
		{http.MethodGet, "/api/staff/audit-logs"},
	} {
		w := app.do(tc.method, tc.path, token, gin.H{})
		assert.Equal(t, http.StatusForbidden, w.Code, tc.path)
		assert.Equal(t, "forbidden", decode[errorBody](t, w).Code, tc.path)
	}
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t, 10)
	staff := app.login("staff")
	alice := app.login("alice")
	bob := app.login("bob")

	// lavadoras
	w := app.do(http.MethodPost, "/api/staff/washers", staff, gin.H{"name": "Lavadora 1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	washer := decode[idBody](t, w)

	w = app.do(http.MethodPost, "/api/staff/washers", staff, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// horários
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	w = app.do(http.MethodPost, "/api/staff/slots", staff, gin.H{
		"washer_id": washer.ID,
		"start":     start.Format(time.RFC3339),
		"duration":  "01:00:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	slot := decode[idBody](t, w)

	w = app.do(http.MethodPost, "/api/staff/slots", staff, gin.H{
		"washer_id": washer.ID,
		"start":     start.Add(30 * time.Minute).Format(time.RFC3339),
		"duration":  "1h",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_overlap", decode[errorBody](t, w).Code)

	w = app.do(http.MethodPost, "/api/staff/slots", staff, gin.H{
		"washer_id": washer.ID,
		"start":     start.Add(5 * time.Hour).Format(time.RFC3339),
		"duration":  "-1h",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_duration", decode[errorBody](t, w).Code)

	// listagem para usuários
	w = app.do(http.MethodGet, "/api/slots", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Total int `json:"total"`
	}](t, w)
	assert.Equal(t, 1, list.Total)

	// agendamento
	path := fmt.Sprintf("/api/slots/%d/book", slot.ID)
	w = app.do(http.MethodPost, path, alice, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reservation := decode[idBody](t, w)

	w = app.do(http.MethodPost, path, bob, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", decode[errorBody](t, w).Code)

	w = app.do(http.MethodGet, "/api/slots", alice, nil)
	assert.Equal(t, 0, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)

	w = app.do(http.MethodGet, "/api/reservations", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)

	// bolsista não pode registrar falta antes do início
	w = app.do(http.MethodPatch, fmt.Sprintf("/api/staff/reservations/%d/presence", reservation.ID), staff, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "presence_in_future", decode[errorBody](t, w).Code)

	// cancelamento
	cancelPath := fmt.Sprintf("/api/reservations/%d", reservation.ID)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, cancelPath, bob, nil).Code)
	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, cancelPath, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, cancelPath, alice, nil).Code)
}

func TestBookingTooFarInAdvance(t *testing.T) {
	app := newTestApp(t, 10)
	staff := app.login("staff")
	alice := app.login("alice")

	w := app.do(http.MethodPost, "/api/staff/washers", staff, gin.H{"name": "Lavadora 1"})
	require.Equal(t, http.StatusCreated, w.Code)
	washer := decode[idBody](t, w)

	w = app.do(http.MethodPost, "/api/staff/slots", staff, gin.H{
		"washer_id": washer.ID,
		"start":     time.Now().UTC().AddDate(0, 0, 20).Format(time.RFC3339),
		"duration":  "1h",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	slot := decode[idBody](t, w)

	w = app.do(http.MethodPost, fmt.Sprintf("/api/slots/%d/book", slot.ID), alice, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "too_far_in_advance", decode[errorBody](t, w).Code)
}

func TestStaffManagesUsers(t *testing.T) {
	app := newTestApp(t, 10)
	staff := app.login("staff")

	w := app.do(http.MethodPost, "/api/staff/users", staff, gin.H{
		"username": "carol",
		"password": "secret",
		"phone":    "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_phone", decode[errorBody](t, w).Code)

	w = app.do(http.MethodPost, "/api/staff/users", staff, gin.H{
		"username":  "carol",
		"password":  "secret",
		"phone":     "11987654321",
		"apartment": "101",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	carol := decode[idBody](t, w)
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(http.MethodPost, "/api/staff/users", staff, gin.H{"username": "carol", "password": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.NotEmpty(t, app.login("carol"))

	w = app.do(http.MethodDelete, fmt.Sprintf("/api/staff/users/%d", carol.ID), staff, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(http.MethodDelete, "/api/staff/users/abc", staff, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, 10)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/health", "", nil).Code)

	w := app.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lavanderia_http_requests_total")
}
