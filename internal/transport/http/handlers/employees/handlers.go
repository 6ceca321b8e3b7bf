package employeeshandler

import (
	"encoding/json"
	"net/http"
	"strings"

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
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{employeeID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Store.ListEmployees(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	emp, err := h.Store.GetEmployee(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

type employeePayload struct {
	FirstName           string                `json:"firstName"`
	LastName            string                `json:"lastName"`
	Email               string                `json:"email"`
	Department          string                `json:"department"`
	Position            string                `json:"position"`
	Status              string                `json:"status"`
	IsAdmin             bool                  `json:"isAdmin"`
	Managers            []review.ManagerLevel `json:"managers"`
	AssignedWorkflowIDs []string              `json:"assignedWorkflowIds"`
}

func (p employeePayload) validate(v *shared.Validator, store *state.Store) {
	v.Required("firstName", p.FirstName, "first name is required")
	v.Required("lastName", p.LastName, "last name is required")
	v.Enum("status", p.Status, []string{review.EmployeeStatusActive, review.EmployeeStatusInactive}, "must be Active or Inactive")

	for _, issue := range review.ValidateManagers(p.Managers) {
		v.Add("managers", issue)
	}
	for _, id := range p.AssignedWorkflowIDs {
		if _, err := store.GetTemplate(id); err != nil {
			v.Add("assignedWorkflowIds", "unknown workflow template "+id)
		}
	}
}

func (p employeePayload) toEmployee() review.Employee {
	return review.Employee{
		FirstName:           strings.TrimSpace(p.FirstName),
		LastName:            strings.TrimSpace(p.LastName),
		Email:               strings.TrimSpace(p.Email),
		Department:          strings.TrimSpace(p.Department),
		Position:            strings.TrimSpace(p.Position),
		Status:              p.Status,
		IsAdmin:             p.IsAdmin,
		Managers:            p.Managers,
		AssignedWorkflowIDs: p.AssignedWorkflowIDs,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	payload.validate(v, h.Store)
	if v.Reject(w, requestID) {
		return
	}

	created := h.Store.CreateEmployee(payload.toEmployee())
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	payload.validate(v, h.Store)
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Store.UpdateEmployee(chi.URLParam(r, "employeeID"), payload.toEmployee())
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	api.Success(w, updated, requestID)
}
