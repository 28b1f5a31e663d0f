package httpserver

import (
	"net/http"
	"time"
)

// New builds the engine's HTTP server. Every operation is one ledger
// round trip, so request handling is bounded tightly; idle keep-alive
// connections from gateway clients are kept longer.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
