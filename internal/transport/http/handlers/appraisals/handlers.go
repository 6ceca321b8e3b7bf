package appraisalshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/review"
	"appraisal/internal/platform/state"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

// Handler serves the appraisal projection: assignments rendered as review
// records. Assignments whose template or employee no longer resolves are
// omitted rather than served half-empty.
type Handler struct {
	Store *state.Store
}

func NewHandler(store *state.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Get("/{assignmentID}", h.handleGet)
		r.Get("/{assignmentID}/form-completion", h.handleFormCompletion)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if !user.IsAdmin() {
		employeeID = user.UserID
	}

	appraisals := make([]review.Appraisal, 0)
	for _, assignment := range h.Store.ListAssignments(employeeID) {
		if appraisal := review.BuildAppraisal(assignment, h.Store.LookupTemplate, h.Store.LookupEmployee); appraisal != nil {
			appraisals = append(appraisals, *appraisal)
		}
	}
	api.Success(w, appraisals, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	assignment, err := h.Store.GetAssignment(chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "appraisal not found", requestID)
		return
	}
	if !user.IsAdmin() && assignment.EmployeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your appraisal", requestID)
		return
	}
	appraisal := review.BuildAppraisal(assignment, h.Store.LookupTemplate, h.Store.LookupEmployee)
	if appraisal == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "appraisal references missing data", requestID)
		return
	}
	api.Success(w, appraisal, requestID)
}

func (h *Handler) handleFormCompletion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	assignment, err := h.Store.GetAssignment(chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "appraisal not found", requestID)
		return
	}
	if !user.IsAdmin() && assignment.EmployeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your appraisal", requestID)
		return
	}
	template := h.Store.LookupTemplate(assignment.WorkflowTemplateID)
	if template == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "appraisal references missing data", requestID)
		return
	}
	api.Success(w, review.FormCompletionByRole(assignment, *template), requestID)
}
