package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/auth"
	"appraisal/internal/platform/state"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

// Handler issues demo session tokens. There are no passwords: picking a
// user from the roster is the whole login flow.
type Handler struct {
	Store      *state.Store
	JWTSecret  string
	SessionTTL time.Duration
}

func NewHandler(store *state.Store, jwtSecret string, ttl time.Duration) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret, SessionTTL: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/session", h.handleCreateSession)
	r.With(middleware.RequireUser).Get("/auth/me", h.handleMe)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.UserID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "userId required", requestID)
		return
	}

	emp, err := h.Store.GetEmployee(payload.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "unknown_user", "no such employee", requestID)
		return
	}

	role := auth.RoleEmployee
	if emp.IsAdmin {
		role = auth.RoleAdmin
	}
	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{UserID: emp.ID, RoleName: role}, h.SessionTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}

	api.Created(w, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":    emp.ID,
			"name":  emp.FullName(),
			"email": emp.Email,
			"role":  role,
		},
	}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	emp, err := h.Store.GetEmployee(user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "unknown_user", "session user no longer on roster", requestID)
		return
	}

	api.Success(w, map[string]any{
		"id":         emp.ID,
		"name":       emp.FullName(),
		"email":      emp.Email,
		"department": emp.Department,
		"position":   emp.Position,
		"role":       user.RoleName,
		"isAdmin":    emp.IsAdmin,
	}, requestID)
}
