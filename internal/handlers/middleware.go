package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"mindcoach/internal/metrics"
	"mindcoach/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens       *security.TokenIssuer
	limiter      *security.RateLimiter
	adminKeyHash string
	trustProxy   bool
}

// NewMiddleware creates a new middleware instance. A nil limiter disables rate limiting.
// trustProxy keys clients by X-Forwarded-For, so set it only behind a reverse proxy.
func NewMiddleware(tokens *security.TokenIssuer, limiter *security.RateLimiter, adminKeyHash string, trustProxy bool) *Middleware {
	return &Middleware{
		tokens:       tokens,
		limiter:      limiter,
		adminKeyHash: adminKeyHash,
		trustProxy:   trustProxy,
	}
}

// RequireUser is middleware that requires a valid bearer token
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.tokens.Verify(security.BearerToken(r))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// OptionalUser attaches the user when a valid bearer token is present and lets anonymous requests through
func (m *Middleware) OptionalUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := security.BearerToken(r); token != "" {
			if userID, err := m.tokens.Verify(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserContextKey, userID))
			}
		}
		next(w, r)
	}
}

// RateLimit is middleware that limits requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.GetClientIP(r, m.trustProxy)) {
			w.Header().Set("Retry-After", "60")
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// RequireAdmin is middleware that checks the admin key header against the configured bcrypt hash
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !security.CheckAdminKey(m.adminKeyHash, r.Header.Get(AdminKeyHeader)) {
			log.Printf("Rejected admin request from %s", security.GetClientIP(r, m.trustProxy))
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		next(w, r)
	}
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging middleware logs HTTP requests and records them in m
func Logging(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		// Call next handler
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		// ServeMux fills in the matched pattern; unmatched requests share one label
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(r.Method, route, rec.status, elapsed)

		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, elapsed)
	})
}

// GetUserIDFromContext retrieves the user id from the request context
func GetUserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserContextKey).(string)
	return userID
}
