package reportshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/reports"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports/appraisals", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/summary", h.handleSummary)
		r.Get("/pdf", h.handleSummaryPDF)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.BuildSummary(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	data, err := reports.SummaryPDF(h.Service.BuildSummary())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render report", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="appraisal-summary.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
