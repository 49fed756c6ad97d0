// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/apperr"
	"inkwell/internal/handlers"
)

// Recoverer catches panics in downstream handlers, logs the stack trace,
// and answers with the standard JSON internal error instead of crashing the
// server. http.ErrAbortHandler is re-raised so net/http can abort the
// connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", chimw.GetReqID(r.Context()),
				"stack", string(debug.Stack()),
			)
			handlers.WriteError(w, r, apperr.New(apperr.Internal, "internal error"))
		}()

		next.ServeHTTP(w, r)
	})
}
