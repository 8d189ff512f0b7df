package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/logging"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SnapshotHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type snapshotHandlerImpl struct {
	snapshotService snapshot.SnapshotService
}

func NewSnapshotHandler(snapshotService snapshot.SnapshotService) SnapshotHandler {
	return &snapshotHandlerImpl{snapshotService: snapshotService}
}

// Create handles POST /hr-analytics/snapshots
func (h *snapshotHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	// An empty body creates a snapshot with every default applied
	var req snapshot.CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logging.LogError(logging.FromContext(r.Context()), "create snapshot decode error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.snapshotService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Snapshot created", result)
}

// GetByID handles GET /hr-analytics/snapshots/{id}
func (h *snapshotHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid snapshot id", nil)
		return
	}

	result, err := h.snapshotService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /hr-analytics/snapshots
func (h *snapshotHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := snapshot.ParseListSnapshotFilter(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	result, err := h.snapshotService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Snapshots, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Refresh handles POST /hr-analytics/snapshots/{id}/refresh
func (h *snapshotHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid snapshot id", nil)
		return
	}

	result, err := h.snapshotService.Refresh(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
