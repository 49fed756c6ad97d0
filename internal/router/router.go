// Package router sets up the HTTP routes and middleware chain for the
// Inkwell API. Procedures live under /api; /health stays outside so probes
// never depend on the database.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/apperr"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(posts *handlers.Posts, categories *handlers.Categories) chi.Router {
	r := chi.NewRouter()

	// Global middleware, outermost first. RequestID runs before the logger
	// and recoverer so both can report the id.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.NotFound(notFoundHandler)

	// Health check, no database access.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Bodies, when present, must be JSON.
		r.Use(chimw.AllowContentType("application/json"))

		r.Route("/posts", posts.Routes)
		r.Route("/categories", categories.Routes)
		r.Get("/slug", handlers.SuggestSlug)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, r, apperr.New(apperr.NotFound, "route not found"))
}
