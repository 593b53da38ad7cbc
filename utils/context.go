package utils

import (
	"context"
	"net/http"

	"recipebox/globals"
)

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, globals.UserIDKey, userID)
}

// GetUserIDFromRequest returns the id stored by the authentication
// middleware, or "" for anonymous requests.
func GetUserIDFromRequest(r *http.Request) string {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
