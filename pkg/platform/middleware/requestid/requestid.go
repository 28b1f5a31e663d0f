// Package requestid assigns each request a correlation id, honoring an
// inbound X-Request-ID when the caller supplies one.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"cyberins/pkg/requestcontext"
)

// Middleware injects a request id into the context and echoes it back in
// the response headers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
