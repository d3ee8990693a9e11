package api

import (
	"net/http"
	"time"
)

// NewHTTPServer wraps the API routes in a server with the usual timeouts. A
// sync can take minutes, so there is no write timeout.
func NewHTTPServer(addr string, a *API) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           a.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
