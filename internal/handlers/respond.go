// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the post and category procedures as JSON over
// HTTP. Inputs are decoded and validated here, before they reach storage.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
)

// maxBodyBytes caps request bodies; the largest field is post content.
const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every failed procedure.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// successBody is returned by delete procedures.
type successBody struct {
	Success bool `json:"success"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Constraint:
		return http.StatusConflict
	case apperr.Configuration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// WriteError renders err as a labeled JSON failure. Server-side failures are
// logged with the request id; their details never reach the caller.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	if status >= http.StatusInternalServerError {
		slog.Error("procedure failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", kind,
			"error", err,
			"request_id", chimw.GetReqID(r.Context()),
		)
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: apperr.MessageOf(err)}})
}

// decodeJSON reads a single JSON object from the request body into dst.
// Malformed bodies, unknown fields, oversized payloads and explicit nulls are
// validation errors: an optional field is either omitted or carries a value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Invalid("request body too large")
		}
		return apperr.Wrap(apperr.Validation, "unreadable request body", err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.Validation, "malformed JSON body", err)
	}
	if dec.More() {
		return apperr.Invalid("request body must contain a single JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return apperr.Invalid("request body must be a JSON object")
	}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		if bytes.Equal(bytes.TrimSpace(fields[name]), []byte("null")) {
			return apperr.Invalid(name + " must not be null")
		}
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Invalid(fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}
