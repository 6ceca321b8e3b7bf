package notificationshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/notifications"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *notifications.Service
}

func NewHandler(service *notifications.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Get("/read", h.handleReadIDs)
		r.Post("/{notificationID}/read", h.handleMarkRead)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	page := shared.ParsePagination(r, 50, 200)
	notes := h.Service.ForUser(user.UserID)
	if page.Offset >= len(notes) {
		notes = notes[:0]
	} else {
		notes = notes[page.Offset:]
	}
	if len(notes) > page.Limit {
		notes = notes[:page.Limit]
	}
	api.Success(w, notes, requestID)
}

func (h *Handler) handleReadIDs(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, map[string]any{"ids": h.Service.ReadIDs(user.UserID)}, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	h.Service.MarkRead(user.UserID, chi.URLParam(r, "notificationID"))
	api.Success(w, map[string]any{"read": true}, requestID)
}
