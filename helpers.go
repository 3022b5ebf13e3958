package core

import (
	"net/http"
)

// Respond writes view to the HTTP response as HTML.
//
// Sets Content-Type to text/html and renders with the request's context.
// Use Registry.Page instead when components on the page should be
// re-renderable through the registry.
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    core.Respond(w, r, views.About())
//	}
func Respond(w http.ResponseWriter, r *http.Request, view Render, opts ...HTMLOption) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return RenderHTML(r.Context(), w, view, opts...)
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// TargetID returns the id attribute of the target element.
//
// Returns empty string if not present.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}
