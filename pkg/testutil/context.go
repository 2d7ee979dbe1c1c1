package testutil

import (
	"net/http"
	"time"

	"hazcom/pkg/requestcontext"
)

// WithRequestID stamps a request ID onto the request context, simulating what
// the request ID middleware does in production.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithClientIP stamps a client IP onto the request context, simulating the
// real IP middleware.
func WithClientIP(req *http.Request, ip string) *http.Request {
	return req.WithContext(requestcontext.WithClientIP(req.Context(), ip))
}

// WithFixedTime pins the request clock so handlers under test see a
// deterministic "now".
func WithFixedTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
