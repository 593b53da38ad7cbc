package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Stack wraps the router with the server-wide middleware, outermost first:
// logging, security headers, CORS, then the store gate. CORS sits outside
// the gate so 503 responses still carry the CORS headers.
func Stack(router http.Handler, allowedOrigins []string, ready func() bool) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(RequireStore(ready, router))
	return Logging(SecurityHeaders(corsHandler))
}
