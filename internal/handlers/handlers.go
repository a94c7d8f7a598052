// Package handlers contains the HTTP handlers for the public catalog,
// the authed dashboard surfaces, and the admin back-office.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/e-n-s-o/enso/internal/middleware"
	"github.com/e-n-s-o/enso/internal/prices"
	"github.com/go-chi/chi/v5"
)

// Prices is the shared price lookup client, set once at startup.
var Prices *prices.Client

func userIDFrom(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(middleware.UserIDContextKey).(uint)
	return id, ok
}

// idParam parses the {id} path segment. A non-numeric id can never
// match a row, so callers treat ok=false as not found rather than
// letting the database reject the cast.
func idParam(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
