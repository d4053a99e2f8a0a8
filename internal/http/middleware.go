package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/auth"
	"github.com/ghostshadow526/foodiesandstories/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const sessionCookie = "fs_session"

// SessionMiddleware resolves the cart session: an existing cookie wins, a
// missing one gets a fresh id so the cart survives page reloads.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int((90 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := withSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthMiddleware verifies an optional bearer token and attaches the identity.
// Anonymous requests pass through; admin gating happens in RequireAdmin.
func AuthMiddleware(provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
				if id, err := provider.Verify(r.Context(), token); err == nil {
					r = r.WithContext(auth.WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the back office routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := auth.FromContext(r.Context())
		if id == nil {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in required")
			return
		}
		if !id.IsAdmin {
			respondError(w, http.StatusForbidden, "permission_denied", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MetricsMiddleware records request counts and latency per route pattern.
func MetricsMiddleware(m *metrics.ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.Observe(pattern, rec.status, time.Since(start))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
