// internal/catalog/handler.go
package catalog

import (
	"errors"
	"net/http"

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

// Routes mounts the book and category endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/books", func(r chi.Router) {
		r.Post("/", h.handleCreateBook)
		r.Get("/", h.handleListBooks)
		r.Get("/{id}", h.handleGetBook)
		r.Put("/{id}", h.handleUpdateBook)
		r.Delete("/{id}", h.handleDeleteBook)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.handleCreateCategory)
		r.Get("/", h.handleListCategories)
		r.Get("/{id}", h.handleGetCategory)
		r.Get("/{id}/books", h.handleCategoryBooks)
		r.Put("/{id}", h.handleUpdateCategory)
		r.Delete("/{id}", h.handleDeleteCategory)
	})
}

type bookRequest struct {
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	ISBN       string    `json:"isbn"`
	Quantity   int       `json:"quantity"`
	CategoryID uuid.UUID `json:"categoryId"`
}

func (h *Handler) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" || req.Author == "" {
		httpx.Fail(w, http.StatusBadRequest, "title and author are required")
		return
	}

	book, err := h.service.CreateBook(r.Context(), CreateBookInput{
		Title:      req.Title,
		Author:     req.Author,
		ISBN:       req.ISBN,
		Quantity:   req.Quantity,
		CategoryID: req.CategoryID,
		CreatedBy:  actorID(r),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusCreated, book)
}

func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParsePageParams(r)
	books, total, err := h.service.ListBooks(r.Context(), r.URL.Query().Get("search"), params.PageSize, params.Offset())
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, httpx.Paged{
		Pagination: httpx.NewPagination(params, total),
		Data:       books,
	})
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, book)
}

func (h *Handler) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req bookRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.service.UpdateBook(r.Context(), id, UpdateBookInput{
		Title:      req.Title,
		Author:     req.Author,
		ISBN:       req.ISBN,
		Quantity:   req.Quantity,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, book)
}

func (h *Handler) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]string{"message": "Book deleted"})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusCreated, category)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParsePageParams(r)
	categories, total, err := h.service.ListCategories(r.Context(), r.URL.Query().Get("search"), params.PageSize, params.Offset())
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, httpx.Paged{
		Pagination: httpx.NewPagination(params, total),
		Data:       categories,
	})
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, category)
}

func (h *Handler) handleCategoryBooks(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid category id")
		return
	}

	books, err := h.service.CategoryBooks(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, books)
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req categoryRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, category)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrCategoryNotFound):
		httpx.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
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
