package testutil

import (
	"net/http"

	"curbo/internal/platform/middleware"
)

// WithAuth adds an authenticated user to the request context, simulating
// what the auth middleware does for a valid bearer token.
func WithAuth(req *http.Request, userID, role string) *http.Request {
	ctx := middleware.WithUser(req.Context(), userID, role)
	return req.WithContext(ctx)
}

// WithClientIP sets the caller IP on the request context, simulating the
// client-metadata middleware.
func WithClientIP(req *http.Request, ip string) *http.Request {
	ctx := middleware.WithClientIP(req.Context(), ip)
	return req.WithContext(ctx)
}
