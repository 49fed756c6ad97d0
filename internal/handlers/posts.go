// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

// PostService is the storage behind the posts procedures.
type PostService interface {
	List(ctx context.Context, filter models.ListPostsFilter) ([]models.PostWithCategories, error)
	GetBySlug(ctx context.Context, slug string) (*models.PostWithCategories, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PostWithCategories, error)
	Create(ctx context.Context, in models.CreatePostInput) (*models.Post, error)
	Update(ctx context.Context, in models.UpdatePostInput) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Posts serves the posts namespace.
type Posts struct {
	store PostService
}

// NewPosts creates the posts handler group.
func NewPosts(store PostService) *Posts {
	return &Posts{store: store}
}

// Routes mounts the posts procedures on r.
func (h *Posts) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/slug/{slug}", h.GetBySlug)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /api/posts with optional published and categoryId filters.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	posts, err := h.store.List(r.Context(), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// parseListFilter reads the list query string. Empty parameters don't filter.
func parseListFilter(r *http.Request) (models.ListPostsFilter, error) {
	var filter models.ListPostsFilter
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("published")); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperr.Invalid("published must be true or false")
		}
		filter.Published = &published
	}

	if raw := strings.TrimSpace(q.Get("categoryId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, apperr.Invalid("categoryId must be a UUID")
		}
		filter.CategoryID = &id
	}

	return filter, nil
}

// GetBySlug handles GET /api/posts/slug/{slug}.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if strings.TrimSpace(s) == "" {
		WriteError(w, r, apperr.Invalid("slug is required"))
		return
	}

	post, err := h.store.GetBySlug(r.Context(), s)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetByID handles GET /api/posts/{id}.
func (h *Posts) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	post, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts and responds with the stored row.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validateCreatePost(&in); err != nil {
		WriteError(w, r, err)
		return
	}

	post, err := h.store.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update handles PATCH /api/posts/{id}. The id in the path wins over any id
// in the body.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in models.UpdatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, r, err)
		return
	}
	in.ID = id
	if err := validateUpdatePost(&in); err != nil {
		WriteError(w, r, err)
		return
	}

	post, err := h.store.Update(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}. Deleting a missing post succeeds.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
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
