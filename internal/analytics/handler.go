// internal/analytics/handler.go
package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"libraledger/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the dashboard aggregation endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/most-borrowed", h.handleMostBorrowed)
		r.Get("/monthly-trends", h.handleMonthlyTrends)
		r.Get("/category-distribution", h.handleCategoryDistribution)
	})
}

func (h *Handler) handleMostBorrowed(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.MostBorrowed(r.Context())
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, books)
}

func (h *Handler) handleMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.service.MonthlyTrends(r.Context())
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, trends)
}

func (h *Handler) handleCategoryDistribution(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CategoryDistribution(r.Context())
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, counts)
}
