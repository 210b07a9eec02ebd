package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryTokenStore struct {
	used map[string]bool
}

func (m *memoryTokenStore) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if m.used[id] {
		return false, nil
	}
	m.used[id] = true
	return true, nil
}

type fakeDashboards struct {
	teacher *model.Teacher
	err     error
}

func (f *fakeDashboards) Dashboard(ctx context.Context, teacherID string) (*dashboard.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if teacherID != f.teacher.ID.String() {
		return nil, service.ErrTeacherNotFound
	}
	bookings := []*model.Booking{
		{ID: uuid.New(), StudentTelegramID: 5, StudentFirstName: "Ivan", Date: time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "11:00", Status: model.BookingStatusConfirmed},
	}
	return dashboard.Compute(f.teacher, bookings, time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)), nil
}

func (f *fakeDashboards) PublicProfile(ctx context.Context, teacherID string) (*service.PublicProfile, error) {
	snapshot, err := f.Dashboard(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return service.NewPublicProfile(snapshot), nil
}

type testServer struct {
	router  *gin.Engine
	auth    *service.AuthService
	teacher *model.Teacher
	dash    *fakeDashboards
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	teacher := model.NewDefaultTeacher(700, "tutor", "Olena")
	teacher.ID = uuid.New()

	auth := service.NewAuthService(service.AuthConfig{
		Secret:     "http-test-secret-value",
		LoginTTL:   10 * time.Minute,
		SessionTTL: 30 * 24 * time.Hour,
	}, &memoryTokenStore{used: map[string]bool{}}, zap.NewNop())

	dash := &fakeDashboards{teacher: teacher}
	handler := NewHandler(dash, auth, true, zap.NewNop())
	router := NewRouter(handler, auth, service.NewMetricsService(), zap.NewNop())

	return &testServer{router: router, auth: auth, teacher: teacher, dash: dash}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) loginToken(t *testing.T, id string, role model.Role) string {
	t.Helper()
	token, err := s.auth.IssueLoginToken(id, role, 700)
	require.NoError(t, err)
	return token
}

func (s *testServer) sessionCookie(t *testing.T, id string, role model.Role) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"token": s.loginToken(t, id, role)})
	rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/telegram", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *APIError {
	t.Helper()
	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-123")

	rec := s.do(req)
	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"token": s.loginToken(t, s.teacher.ID.String(), model.RoleTeacher)})

	rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/telegram", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, sessionCookie, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.InDelta(t, 30*24*60*60, cookie.MaxAge, 5)

	var envelope struct {
		Data sessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, model.RoleTeacher, envelope.Data.Role)
	assert.Equal(t, int64(700), envelope.Data.TelegramID)
}

func TestLogin_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/telegram", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodPost, "/auth/telegram", strings.NewReader(`{"token":"forged"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, rec).Code)

	token := s.loginToken(t, s.teacher.ID.String(), model.RoleTeacher)
	body := `{"token":"` + token + `"}`
	require.Equal(t, http.StatusOK, s.do(httptest.NewRequest(http.MethodPost, "/auth/telegram", strings.NewReader(body))).Code)

	rec = s.do(httptest.NewRequest(http.MethodPost, "/auth/telegram", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_USED", decodeError(t, rec).Code)
}

func TestLoginLink_Redirects(t *testing.T) {
	s := newTestServer(t)
	token := s.loginToken(t, s.teacher.ID.String(), model.RoleTeacher)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/auth/telegram?token="+token, nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/dashboard", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies())

	rec = s.do(httptest.NewRequest(http.MethodGet, "/auth/telegram", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	cookie := s.sessionCookie(t, s.teacher.ID.String(), model.RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.AddCookie(cookie)
	rec := s.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	for _, key := range []string{"teacher", "stats", "topStudents", "weekdayStats", "timeSlotStats", "upcomingBookings", "periodStats"} {
		assert.Contains(t, envelope.Data, key)
	}

	var stats dashboard.Statistics
	require.NoError(t, json.Unmarshal(envelope.Data["stats"], &stats))
	assert.Equal(t, 1, stats.UpcomingLessons)
}

func TestDashboard_BearerToken(t *testing.T) {
	s := newTestServer(t)
	cookie := s.sessionCookie(t, s.teacher.ID.String(), model.RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)

	assert.Equal(t, http.StatusOK, s.do(req).Code)
}

func TestDashboard_AccessControl(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, s.do(req).Code)

	student := s.sessionCookie(t, "700", model.RoleStudent)
	req = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.AddCookie(student)
	rec = s.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Code)

	missing := s.sessionCookie(t, uuid.NewString(), model.RoleTeacher)
	req = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.AddCookie(missing)
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)
}

func TestDashboard_InternalError(t *testing.T) {
	s := newTestServer(t)
	cookie := s.sessionCookie(t, s.teacher.ID.String(), model.RoleTeacher)
	s.dash.err = errors.New("db down")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.AddCookie(cookie)
	rec := s.do(req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestDashboard_Renderings(t *testing.T) {
	s := newTestServer(t)
	cookie := s.sessionCookie(t, s.teacher.ID.String(), model.RoleTeacher)

	tests := []struct {
		path        string
		contentType string
		prefix      []byte
	}{
		{"/api/dashboard/report.pdf", "application/pdf", []byte("%PDF-")},
		{"/api/dashboard/charts/weekdays.png", "image/png", []byte("\x89PNG")},
		{"/api/dashboard/charts/hours.png", "image/png", []byte("\x89PNG")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.AddCookie(cookie)
			rec := s.do(req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), tt.prefix))
		})
	}
}

func TestPublicProfile(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/teachers/"+s.teacher.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "studentTelegramId")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/teachers/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsAndUnknownRoutes(t *testing.T) {
	s := newTestServer(t)
	s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodDelete, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
