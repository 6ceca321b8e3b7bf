package assignmentshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/review"
	"appraisal/internal/platform/state"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Store *state.Store
}

func NewHandler(store *state.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assignments", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.With(middleware.RequireAdmin).Post("/regenerate", h.handleRegenerate)
		r.Get("/{assignmentID}", h.handleGet)
		r.With(middleware.RequireAdmin).Put("/{assignmentID}/manager-overrides", h.handleSetOverrides)
		r.Put("/{assignmentID}/stages/{stageID}/status", h.handleSetStageStatus)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	// Non-admins only see their own assignments regardless of the filter.
	employeeID := r.URL.Query().Get("employeeId")
	if !user.IsAdmin() {
		employeeID = user.UserID
	}
	api.Success(w, h.Store.ListAssignments(employeeID), requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	assignment, err := h.Store.GetAssignment(chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "assignment not found", requestID)
		return
	}
	if !user.IsAdmin() && assignment.EmployeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your assignment", requestID)
		return
	}
	api.Success(w, assignment, requestID)
}

func (h *Handler) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	count := h.Store.Regenerate()
	api.Success(w, map[string]any{"assignments": count}, requestID)
}

func (h *Handler) handleSetOverrides(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Managers []review.ManagerLevel `json:"managers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	for _, issue := range review.ValidateManagers(payload.Managers) {
		v.Add("managers", issue)
	}
	if v.Reject(w, requestID) {
		return
	}

	assignment, err := h.Store.SetManagerOverrides(chi.URLParam(r, "assignmentID"), payload.Managers)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "assignment not found", requestID)
		return
	}
	api.Success(w, assignment, requestID)
}

var taskStatuses = []string{
	review.TaskStatusPending,
	review.TaskStatusInProgress,
	review.TaskStatusCompleted,
	review.TaskStatusOverdue,
	review.TaskStatusCancelled,
}

func (h *Handler) handleSetStageStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, taskStatuses, "unknown task status")
	if v.Reject(w, requestID) {
		return
	}

	assignmentID := chi.URLParam(r, "assignmentID")
	if !user.IsAdmin() {
		current, err := h.Store.GetAssignment(assignmentID)
		if err != nil {
			api.Fail(w, http.StatusNotFound, "not_found", "assignment not found", requestID)
			return
		}
		if current.EmployeeID != user.UserID {
			api.Fail(w, http.StatusForbidden, "forbidden", "not your assignment", requestID)
			return
		}
	}

	assignment, err := h.Store.SetStageStatus(assignmentID, chi.URLParam(r, "stageID"), payload.Status, user.UserID)
	switch {
	case errors.Is(err, state.ErrStageBlocked):
		api.Fail(w, http.StatusConflict, "stage_blocked", "required stages are not completed", requestID)
		return
	case errors.Is(err, state.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "stage_update_failed", "failed to update stage", requestID)
		return
	}
	api.Success(w, assignment, requestID)
}
