package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"wordquiz/internal/metrics"
	"wordquiz/internal/security"
	"wordquiz/internal/utils"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const RequestIDContextKey ContextKey = "request_id"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(limiter *security.RateLimiter) *Middleware {
	return &Middleware{limiter: limiter}
}

// RateLimit rejects clients that send too many writes
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.ClientIP(r)) {
			log.Printf("Rate limit exceeded for %s %s", r.Method, r.URL.Path)
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware tags each request with an id, logs it and records
// request metrics
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), RequestIDContextKey, requestID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// The mux fills in the matched pattern; unmatched paths share one label
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(elapsed.Seconds())
		metrics.HTTPRequestsByPlatform.WithLabelValues(utils.ClientPlatform(r.UserAgent())).Inc()

		log.Printf("%s %s %d %s [%s]", r.Method, r.URL.Path, rec.status, elapsed, requestID)
	})
}

// GetRequestID retrieves the request id from the request context
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDContextKey).(string)
	if !ok {
		return ""
	}
	return id
}
