// internal/membership/handler.go
package membership

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"libraledger/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the member endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Post("/", h.handleCreateMember)
		r.Get("/", h.handleListMembers)
		r.Get("/{id}", h.handleGetMember)
		r.Put("/{id}", h.handleUpdateMember)
		r.Delete("/{id}", h.handleDeleteMember)
	})
}

func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.service.CreateMember(r.Context(), CreateMemberInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusCreated, member)
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParsePageParams(r)
	filter := ListFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}

	members, total, err := h.service.ListMembers(r.Context(), filter, params.PageSize, params.Offset())
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, httpx.Paged{
		Pagination: httpx.NewPagination(params, total),
		Data:       members,
	})
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.service.GetMember(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, member)
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req struct {
		Name       *string    `json:"name"`
		Email      *string    `json:"email"`
		Phone      *string    `json:"phone"`
		Status     *string    `json:"status"`
		JoinedDate *time.Time `json:"joinedDate"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.service.UpdateMember(r.Context(), id, UpdateMemberInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Status:     req.Status,
		JoinedDate: req.JoinedDate,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, member)
}

func (h *Handler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.service.DeleteMember(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]string{"message": "Member deleted"})
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		httpx.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	default:
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
	}
}
