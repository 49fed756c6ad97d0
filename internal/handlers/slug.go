package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/apperr"
	"inkwell/internal/slug"
)

type slugSuggestion struct {
	Slug string `json:"slug"`
}

// SuggestSlug handles GET /api/slug?text=... and returns the generated slug
// for an editor's title. It never checks uniqueness.
func SuggestSlug(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if strings.TrimSpace(text) == "" {
		WriteError(w, r, apperr.Invalid("text is required"))
		return
	}

	s := slug.Generate(text)
	if s == "" {
		WriteError(w, r, apperr.Invalid("text contains no letters or digits"))
		return
	}
	writeJSON(w, http.StatusOK, slugSuggestion{Slug: s})
}
