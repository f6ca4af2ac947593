package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"golfacademy/internal/models"
	"golfacademy/internal/security"
	"golfacademy/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// SessionCookieName is the browser session cookie
const SessionCookieName = "session_id"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService  *service.AuthService
	tokenService *service.TokenService
	csrf         *security.CSRFGenerator
	authLimiter  *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, tokenService *service.TokenService, csrf *security.CSRFGenerator, authLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService:  authService,
		tokenService: tokenService,
		csrf:         csrf,
		authLimiter:  authLimiter,
	}
}

// RequireAuth requires a valid session cookie or bearer token and puts the
// user on the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.resolveUser(w, r)
		if user == nil {
			respondWithError(w, http.StatusUnauthorized, "authentication required", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) resolveUser(w http.ResponseWriter, r *http.Request) *models.User {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		userID, err := m.tokenService.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return nil
		}
		user, err := m.authService.GetUser(userID)
		if err != nil {
			return nil
		}
		return user
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	user, err := m.authService.ValidateSession(cookie.Value)
	if err != nil {
		// Clear the dead cookie so the browser stops sending it
		http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
		return nil
	}
	return user
}

// CSRFProtect validates the CSRF token on state-changing requests that
// arrive with a session cookie. Bearer-token requests carry no ambient
// credentials and are exempt.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, r)
			return
		}

		if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			next(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusForbidden, "invalid CSRF token", "", nil)
			return
		}
		token := r.Header.Get("X-CSRF-Token")
		if !m.csrf.ValidateToken(cookie.Value, token) {
			respondWithError(w, http.StatusForbidden, "invalid CSRF token", "", nil)
			return
		}

		next(w, r)
	}
}

// RateLimit throttles requests by client IP; used on the auth endpoints
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.authLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
