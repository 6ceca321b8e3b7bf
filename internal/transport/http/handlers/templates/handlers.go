package templateshandler

import (
	"encoding/json"
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
	r.Route("/workflow-templates", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Get("/{templateID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{templateID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Store.ListTemplates(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	template, err := h.Store.GetTemplate(chi.URLParam(r, "templateID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "workflow template not found", requestID)
		return
	}
	api.Success(w, template, requestID)
}

func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, requestID string) (review.WorkflowTemplate, bool) {
	var template review.WorkflowTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return review.WorkflowTemplate{}, false
	}

	v := shared.NewValidator()
	for _, issue := range review.ValidateTemplate(template) {
		v.Add("stages", issue)
	}
	for _, stage := range template.Stages {
		if stage.Type == review.StageTypeEvaluation && stage.EvaluationFormID != "" {
			if _, err := h.Store.GetForm(stage.EvaluationFormID); err != nil {
				v.Add("stages", "unknown evaluation form "+stage.EvaluationFormID)
			}
		}
	}
	if v.Reject(w, requestID) {
		return review.WorkflowTemplate{}, false
	}
	return template, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	template, ok := h.decodeValid(w, r, requestID)
	if !ok {
		return
	}
	api.Created(w, h.Store.CreateTemplate(template), requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	template, ok := h.decodeValid(w, r, requestID)
	if !ok {
		return
	}
	updated, err := h.Store.UpdateTemplate(chi.URLParam(r, "templateID"), template)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "workflow template not found", requestID)
		return
	}
	api.Success(w, updated, requestID)
}
