// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

// CategoryService is the storage behind the categories procedures.
type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, in models.CreateCategoryInput) (*models.Category, error)
	Update(ctx context.Context, in models.UpdateCategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Categories serves the categories namespace.
type Categories struct {
	store CategoryService
}

// NewCategories creates the categories handler group.
func NewCategories(store CategoryService) *Categories {
	return &Categories{store: store}
}

// Routes mounts the categories procedures on r.
func (h *Categories) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/slug/{slug}", h.GetBySlug)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /api/categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetBySlug handles GET /api/categories/slug/{slug}.
func (h *Categories) GetBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if strings.TrimSpace(s) == "" {
		WriteError(w, r, apperr.Invalid("slug is required"))
		return
	}

	category, err := h.store.GetBySlug(r.Context(), s)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// GetByID handles GET /api/categories/{id}.
func (h *Categories) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	category, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Create handles POST /api/categories.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validateCreateCategory(&in); err != nil {
		WriteError(w, r, err)
		return
	}

	category, err := h.store.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// Update handles PATCH /api/categories/{id}.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in models.UpdateCategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, r, err)
		return
	}
	in.ID = id
	if err := validateUpdateCategory(&in); err != nil {
		WriteError(w, r, err)
		return
	}

	category, err := h.store.Update(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}. Linked posts survive.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successBody{Success: true})
}
