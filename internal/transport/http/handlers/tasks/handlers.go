package taskshandler

import (
	"net/http"
	"time"

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
	r.With(middleware.RequireUser).Get("/tasks", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if !user.IsAdmin() {
		employeeID = user.UserID
	}

	// Optional due-date window. Tasks without a due date drop out when a
	// bound is set.
	v := shared.NewValidator()
	var dueFrom, dueTo time.Time
	if raw := r.URL.Query().Get("dueFrom"); raw != "" {
		dueFrom, _ = v.Date("dueFrom", raw)
	}
	if raw := r.URL.Query().Get("dueTo"); raw != "" {
		dueTo, _ = v.Date("dueTo", raw)
	}
	if v.Reject(w, requestID) {
		return
	}

	now := h.Store.Now()
	tasks := make([]review.Task, 0)
	for _, assignment := range h.Store.ListAssignments(employeeID) {
		template := h.Store.LookupTemplate(assignment.WorkflowTemplateID)
		emp := h.Store.LookupEmployee(assignment.EmployeeID)
		if template == nil || emp == nil {
			continue
		}
		for _, task := range review.BuildTasks(assignment, *template, *emp, now) {
			if !inDueWindow(task, dueFrom, dueTo) {
				continue
			}
			tasks = append(tasks, task)
		}
	}
	api.Success(w, tasks, requestID)
}

func inDueWindow(task review.Task, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if task.DueDate == nil {
		return false
	}
	if !from.IsZero() && task.DueDate.Before(from) {
		return false
	}
	if !to.IsZero() && task.DueDate.After(to) {
		return false
	}
	return true
}
