package formshandler

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
	r.Route("/evaluation-forms", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Get("/{formID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{formID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Store.ListForms(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	form, err := h.Store.GetForm(chi.URLParam(r, "formID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation form not found", requestID)
		return
	}
	api.Success(w, form, requestID)
}

var fieldTypes = []string{
	review.FieldTypeText,
	review.FieldTypeTextarea,
	review.FieldTypeNumber,
	review.FieldTypeRating,
	review.FieldTypeDropdown,
	review.FieldTypeCheckbox,
	review.FieldTypeDate,
	review.FieldTypeFile,
}

func decodeValid(w http.ResponseWriter, r *http.Request, requestID string) (review.EvaluationForm, bool) {
	var form review.EvaluationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return review.EvaluationForm{}, false
	}

	v := shared.NewValidator()
	v.Required("name", form.Name, "form name is required")
	if len(form.Fields) == 0 {
		v.Add("fields", "a form needs at least one field")
	}
	seen := make(map[string]bool, len(form.Fields))
	for _, field := range form.Fields {
		v.Required("fields", field.ID, "every field needs an id")
		v.Required("fields", field.Label, "every field needs a label")
		v.Enum("fields", field.Type, fieldTypes, "unknown field type "+field.Type)
		if field.ID != "" && seen[field.ID] {
			v.Add("fields", "duplicate field id "+field.ID)
		}
		seen[field.ID] = true
	}
	if v.Reject(w, requestID) {
		return review.EvaluationForm{}, false
	}
	return form, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	form, ok := decodeValid(w, r, requestID)
	if !ok {
		return
	}
	api.Created(w, h.Store.CreateForm(form), requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	form, ok := decodeValid(w, r, requestID)
	if !ok {
		return
	}
	updated, err := h.Store.UpdateForm(chi.URLParam(r, "formID"), form)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation form not found", requestID)
		return
	}
	api.Success(w, updated, requestID)
}
