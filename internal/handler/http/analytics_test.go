package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/memory"
	analyticsService "github.com/cmlabs-hris/hris-analytics-go/internal/service/analytics"
	snapshotService "github.com/cmlabs-hris/hris-analytics-go/internal/service/snapshot"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerTestNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router     *chi.Mux
	jwtService *jwt.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clock := func() time.Time { return handlerTestNow }
	store := memory.NewRecordStore()
	memory.Seed(store, handlerTestNow)

	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	router := NewRouter(RouterOptions{Logger: logger, RequestTimeout: 5 * time.Second},
		jwtService,
		NewAnalyticsHandler(analyticsService.NewAnalyticsService(store, clock)),
		NewSnapshotHandler(snapshotService.NewSnapshotService(memory.NewSnapshotRepository(store, clock), store, clock)),
	)
	return &testServer{router: router, jwtService: jwtService}
}

func (s *testServer) token(t *testing.T, role auth.Role) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken("user-1", nil, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAnalytics_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/hr-analytics/data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := jwt.NewJWTService("another-secret", time.Hour)
	forged, _, err := other.GenerateAccessToken("user-1", nil, auth.RoleOwner)
	require.NoError(t, err)

	rec = srv.do(t, http.MethodGet, "/api/v1/hr-analytics/data", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAnalytics_PostData(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t, auth.RoleEmployee)

	tests := []struct {
		name      string
		body      string
		wantError bool
	}{
		{"empty body", "", false},
		{"all departments", `{"department_id": null}`, false},
		{"department as number", `{"department_id": 1, "start_date": "2024-06-01", "end_date": "2024-06-15"}`, false},
		{"department zero", `{"department_id": 0}`, false},
		{"department as string", `{"department_id": "2"}`, false},
		{"department false", `{"department_id": false}`, false},
		{"unknown department", `{"department_id": 99}`, true},
		{"department true", `{"department_id": true}`, true},
		{"inverted range", `{"start_date": "2024-06-15", "end_date": "2024-06-01"}`, true},
		{"malformed body", `{"department_id":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/data", token, strings.NewReader(tt.body))
			assert.Equal(t, http.StatusOK, rec.Code)

			body := decodeBody(t, rec)
			for _, key := range []string{"total_employees", "turnover_rate", "avg_salary", "kpi_average", "avg_kpi",
				"kpi_distribution", "attendance_trends", "salary_distribution", "leave_trends"} {
				assert.Contains(t, body, key)
			}

			if tt.wantError {
				assert.Equal(t, true, body["error"])
				assert.NotEmpty(t, body["message"])
				assert.Equal(t, float64(0), body["total_employees"])
				assert.Equal(t, []interface{}{}, body["kpi_distribution"])
			} else {
				assert.NotContains(t, body, "error")
				assert.Greater(t, body["total_employees"], float64(0))
			}
		})
	}
}

func TestAnalytics_GetDataMatchesPost(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t, auth.RoleEmployee)

	get := srv.do(t, http.MethodGet, "/api/v1/hr-analytics/data?department_id=1&start_date=2024-06-01&end_date=2024-06-15", token, nil)
	post := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/data", token,
		strings.NewReader(`{"department_id":"1","start_date":"2024-06-01","end_date":"2024-06-15"}`))

	require.Equal(t, http.StatusOK, get.Code)
	require.Equal(t, http.StatusOK, post.Code)
	assert.JSONEq(t, post.Body.String(), get.Body.String())

	var resp analytics.AnalyticsResponse
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &resp))
	require.Len(t, resp.SalaryDistribution, 1)
	assert.Equal(t, "Engineering", resp.SalaryDistribution[0].Department)
}

func TestAnalytics_Departments(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/hr-analytics/departments", srv.token(t, auth.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var departments []analytics.DepartmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&departments))
	assert.Equal(t, []analytics.DepartmentResponse{
		{ID: 1, Name: "Engineering"},
		{ID: 2, Name: "Finance"},
		{ID: 3, Name: "People"},
	}, departments)
}

func TestAnalytics_EmployeeMetrics(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t, auth.RoleEmployee)

	rec := srv.do(t, http.MethodGet, "/api/v1/hr-analytics/employees/1/metrics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["employee_id"])
	assert.Equal(t, "Employee 01", data["employee_name"])

	rec = srv.do(t, http.MethodGet, "/api/v1/hr-analytics/employees/999/metrics", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, id := range []string{"abc", "+1", "0"} {
		rec = srv.do(t, http.MethodGet, "/api/v1/hr-analytics/employees/"+id+"/metrics", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestAnalytics_Export(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t, auth.RoleEmployee)

	rec := srv.do(t, http.MethodGet, "/api/v1/hr-analytics/export?department_id=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "hr-analytics.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	department, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Finance", department)

	rec = srv.do(t, http.MethodGet, "/api/v1/hr-analytics/export?start_date=2023-01-01&end_date=2024-06-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshots_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	manager := srv.token(t, auth.RoleManager)

	rec := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/snapshots", manager,
		strings.NewReader(`{"name":"June","department_id":1,"date_from":"2024-06-01","date_to":"2024-06-15"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)["data"].(map[string]interface{})
	id := created["id"].(string)
	assert.Equal(t, "June", created["name"])

	rec = srv.do(t, http.MethodGet, "/api/v1/hr-analytics/snapshots/"+id, manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/hr-analytics/snapshots/"+id+"/refresh", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/hr-analytics/snapshots?page=1&limit=10", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["data"], 1)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total_items"])
}

func TestSnapshots_Errors(t *testing.T) {
	srv := newTestServer(t)
	manager := srv.token(t, auth.RoleManager)

	t.Run("employees cannot create", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/snapshots", srv.token(t, auth.RoleEmployee), strings.NewReader(`{}`))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/snapshots", manager, strings.NewReader(`{"date_from":"yesterday"}`))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown department", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/snapshots", manager, strings.NewReader(`{"department_id":42}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/snapshots", manager, strings.NewReader(""))
		require.Equal(t, http.StatusCreated, rec.Code)
		created := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "HR Analytics - 2024-06-15", created["name"])
		assert.Equal(t, "2024-05-16", created["date_from"])
		assert.Equal(t, "2024-06-15", created["date_to"])
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/hr-analytics/snapshots", manager, strings.NewReader(`{`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/hr-analytics/snapshots/not-a-uuid", manager, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id, err := uuid.NewV7()
		require.NoError(t, err)
		rec := srv.do(t, http.MethodGet, "/api/v1/hr-analytics/snapshots/"+id.String(), manager, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHeartbeat(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
