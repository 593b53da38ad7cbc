package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"recipebox/apperr"
	"recipebox/store"
	"recipebox/utils"
)

const msgLoggedOut = "Please log in / You are logged out"

// Authenticate looks up the user owning the Authorization token and stores
// its id in the request context. An optional "Bearer " prefix is accepted;
// the remainder must equal the stored token exactly.
func Authenticate(users store.UserStore) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				utils.RespondWithError(w, apperr.Unauthenticated(msgLoggedOut), "")
				return
			}

			user, err := users.FindByToken(r.Context(), token)
			if errors.Is(err, store.ErrNotFound) {
				utils.RespondWithError(w, apperr.Unauthenticated(msgLoggedOut), "")
				return
			}
			if err != nil {
				utils.RespondWithError(w, apperr.StoreFailure("Bad request.", err), "")
				return
			}

			ctx := utils.WithUserID(r.Context(), user.ID.Hex())
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// RequireStore rejects every request with 503 while ready reports false.
func RequireStore(ready func() bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ready() {
			utils.RespondWithError(w, &apperr.Error{Kind: apperr.KindStoreUnavailable, Message: "Service unavailable"}, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders applies a set of recommended HTTP security headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
