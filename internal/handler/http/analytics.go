package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/logging"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
	analyticsService "github.com/cmlabs-hris/hris-analytics-go/internal/service/analytics"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler interface {
	// GetData handles POST /hr-analytics/data
	GetData(w http.ResponseWriter, r *http.Request)
	// QueryData handles GET /hr-analytics/data
	QueryData(w http.ResponseWriter, r *http.Request)
	// ListDepartments handles GET /hr-analytics/departments
	ListDepartments(w http.ResponseWriter, r *http.Request)
	// GetEmployeeMetrics handles GET /hr-analytics/employees/{id}/metrics
	GetEmployeeMetrics(w http.ResponseWriter, r *http.Request)
	// Export handles GET /hr-analytics/export
	Export(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: analyticsService}
}

// GetData answers with the analytics object itself and HTTP 200, including
// the error shape.
func (h *analyticsHandlerImpl) GetData(w http.ResponseWriter, r *http.Request) {
	var req analytics.AnalyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logging.LogError(logging.FromContext(r.Context()), "hr analytics decode error", err)
		response.JSON(w, http.StatusOK, analyticsService.ErrorResponse(
			fmt.Errorf("%w: malformed request body", analytics.ErrInvalidParameter)))
		return
	}

	response.JSON(w, http.StatusOK, h.analyticsService.GetAnalytics(r.Context(), req))
}

func (h *analyticsHandlerImpl) QueryData(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.analyticsService.GetAnalytics(r.Context(), requestFromQuery(r)))
}

// ListDepartments never fails the dashboard: a store failure is logged and
// an empty list returned.
func (h *analyticsHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.analyticsService.ListDepartments(r.Context())
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "list departments failed", err)
		departments = []analytics.DepartmentResponse{}
	}

	response.JSON(w, http.StatusOK, departments)
}

func (h *analyticsHandlerImpl) GetEmployeeMetrics(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	if !validator.IsNumeric(rawID) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	result, err := h.analyticsService.GetEmployeeMetrics(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *analyticsHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.analyticsService.Export(r.Context(), requestFromQuery(r), &buf); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "hr analytics export failed", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="hr-analytics.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func requestFromQuery(r *http.Request) analytics.AnalyticsRequest {
	q := r.URL.Query()
	return analytics.AnalyticsRequest{
		DepartmentID: analytics.DepartmentParam(q.Get("department_id")),
		StartDate:    q.Get("start_date"),
		EndDate:      q.Get("end_date"),
	}
}
