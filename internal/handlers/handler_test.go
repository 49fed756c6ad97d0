// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory services and request helpers shared by
// the handler tests.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

// memoryStore implements PostService and CategoryService in memory. It keeps
// the same observable rules as the SQL stores: unique slugs, newest posts
// first, cascading link removal and idempotent deletes.
type memoryStore struct {
	mu         sync.Mutex
	posts      []models.Post
	categories []models.Category
	links      map[uuid.UUID][]uuid.UUID // post id -> category ids
	err        error                     // returned by every call when set
	clock      time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		links: make(map[uuid.UUID][]uuid.UUID),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) now() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// postStore and categoryStore split memoryStore into the two service views,
// since both interfaces use the same method names.
type postStore struct{ *memoryStore }
type categoryStore struct{ *memoryStore }

func (s postStore) List(_ context.Context, filter models.ListPostsFilter) ([]models.PostWithCategories, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	out := []models.PostWithCategories{}
	for i := len(s.posts) - 1; i >= 0; i-- {
		p := s.posts[i]
		if filter.Published != nil && p.Published != *filter.Published {
			continue
		}
		pwc := s.withCategories(p)
		if filter.CategoryID != nil && !linkedTo(pwc.Categories, *filter.CategoryID) {
			continue
		}
		out = append(out, pwc)
	}
	return out, nil
}

func (m *memoryStore) withCategories(p models.Post) models.PostWithCategories {
	cats := []models.CategorySummary{}
	for _, cid := range m.links[p.ID] {
		for i := range m.categories {
			if m.categories[i].ID == cid {
				cats = append(cats, summaryOf(m.categories[i]))
			}
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return models.PostWithCategories{Post: p, Categories: cats}
}

func (s postStore) GetBySlug(_ context.Context, slug string) (*models.PostWithCategories, error) {
	return s.findPost(func(p models.Post) bool { return p.Slug == slug })
}

func (s postStore) GetByID(_ context.Context, id uuid.UUID) (*models.PostWithCategories, error) {
	return s.findPost(func(p models.Post) bool { return p.ID == id })
}

func (m *memoryStore) findPost(match func(models.Post) bool) (*models.PostWithCategories, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.posts {
		if match(p) {
			pwc := m.withCategories(p)
			return &pwc, nil
		}
	}
	return nil, apperr.Missing("post")
}

func (s postStore) Create(_ context.Context, in models.CreatePostInput) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.posts {
		if p.Slug == in.Slug {
			return nil, apperr.New(apperr.Constraint, "a post with this slug already exists")
		}
	}
	for _, cid := range in.CategoryIDs {
		if !s.hasCategory(cid) {
			return nil, apperr.New(apperr.Constraint, "category does not exist")
		}
	}

	author := models.DefaultAuthorName
	if in.AuthorName != nil {
		author = *in.AuthorName
	}
	now := s.now()
	p := models.Post{
		ID: uuid.New(), Title: in.Title, Slug: in.Slug, Content: in.Content,
		Excerpt: in.Excerpt, Published: in.Published, AuthorName: author,
		CreatedAt: now, UpdatedAt: now,
	}
	s.posts = append(s.posts, p)
	s.links[p.ID] = append([]uuid.UUID(nil), in.CategoryIDs...)
	return &p, nil
}

func (m *memoryStore) hasCategory(id uuid.UUID) bool {
	for _, c := range m.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s postStore) Update(_ context.Context, in models.UpdatePostInput) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.posts {
		p := &s.posts[i]
		if p.ID != in.ID {
			continue
		}
		if in.Title != nil {
			p.Title = *in.Title
		}
		if in.Slug != nil {
			p.Slug = *in.Slug
		}
		if in.Content != nil {
			p.Content = *in.Content
		}
		if in.Excerpt != nil {
			p.Excerpt = *in.Excerpt
		}
		if in.Published != nil {
			p.Published = *in.Published
		}
		if in.AuthorName != nil {
			p.AuthorName = *in.AuthorName
		}
		if in.CategoryIDs != nil {
			s.links[p.ID] = append([]uuid.UUID(nil), (*in.CategoryIDs)...)
		}
		p.UpdatedAt = s.now()
		out := *p
		return &out, nil
	}
	return nil, apperr.Missing("post")
}

func (s postStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	delete(s.links, id)
	return nil
}

func (s categoryStore) List(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := append([]models.Category{}, s.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s categoryStore) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	return s.findCategory(func(c models.Category) bool { return c.Slug == slug })
}

func (s categoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	return s.findCategory(func(c models.Category) bool { return c.ID == id })
}

func (m *memoryStore) findCategory(match func(models.Category) bool) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.categories {
		if match(c) {
			out := c
			return &out, nil
		}
	}
	return nil, apperr.Missing("category")
}

func (s categoryStore) Create(_ context.Context, in models.CreateCategoryInput) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.categories {
		if c.Name == in.Name || c.Slug == in.Slug {
			return nil, apperr.New(apperr.Constraint, "a category with this name or slug already exists")
		}
	}
	now := s.now()
	c := models.Category{ID: uuid.New(), Name: in.Name, Slug: in.Slug, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	s.categories = append(s.categories, c)
	return &c, nil
}

func (s categoryStore) Update(_ context.Context, in models.UpdateCategoryInput) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.categories {
		c := &s.categories[i]
		if c.ID != in.ID {
			continue
		}
		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Slug != nil {
			c.Slug = *in.Slug
		}
		if in.Description != nil {
			c.Description = *in.Description
		}
		c.UpdatedAt = s.now()
		out := *c
		return &out, nil
	}
	return nil, apperr.Missing("category")
}

func (s categoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	for pid, cids := range s.links {
		kept := cids[:0]
		for _, cid := range cids {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		s.links[pid] = kept
	}
	return nil
}

func summaryOf(c models.Category) models.CategorySummary {
	return models.CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func linkedTo(cats []models.CategorySummary, id uuid.UUID) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}

// testServer mounts both handler groups the way the router does.
func testServer(t *testing.T) (*memoryStore, http.Handler) {
	t.Helper()

	mem := newMemoryStore()
	r := chi.NewRouter()
	r.Route("/api/posts", NewPosts(postStore{mem}).Routes)
	r.Route("/api/categories", NewCategories(categoryStore{mem}).Routes)
	r.Get("/api/slug", SuggestSlug)
	return mem, r
}

// doJSON performs a request against h with an optional JSON body.
func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals the recorded response into a value of type T.
func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

// requireErrorKind asserts the status code and labeled kind of a failure.
func requireErrorKind(t *testing.T, rr *httptest.ResponseRecorder, status int, kind apperr.Kind) {
	t.Helper()

	require.Equal(t, status, rr.Code, "body: %s", rr.Body.String())
	body := decodeBody[errorBody](t, rr)
	require.Equal(t, kind, body.Error.Kind)
	require.NotEmpty(t, body.Error.Message)
}
