// internal/lending/handler.go
package lending

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"libraledger/internal/catalog"
	"libraledger/internal/httpx"
	"libraledger/internal/membership"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the lending endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/lendings", func(r chi.Router) {
		r.Post("/", h.handleBorrow)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}/return", h.handleReturn)
	})
}

func (h *Handler) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID   uuid.UUID `json:"bookId"`
		MemberID uuid.UUID `json:"memberId"`
		DueDate  time.Time `json:"dueDate"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.Borrow(r.Context(), req.BookID, req.MemberID, req.DueDate, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, record)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid lending id")
		return
	}

	record, err := h.service.Return(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, record)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid lending id")
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, detail)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, details)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrLendingNotFound),
		errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, membership.ErrMemberNotFound):
		httpx.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoCopiesAvailable),
		errors.Is(err, ErrAlreadyReturned),
		errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	default:
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
	}
}

// actorID reads the librarian identity propagated by the frontend. Requests
// without one get the zero UUID.
func actorID(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(r.Header.Get("X-Actor-ID"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
