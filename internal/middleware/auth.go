package middleware

import (
	"net/http"
	"strings"

	"github.com/tamasolah/travelair/internal/telemetry/tracing"
	"github.com/tamasolah/travelair/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type authChecker interface {
	IsAuthenticated() bool
}

// AuthMiddlewareHandler gates the page and API routes behind the session.
// The login page and the session endpoints stay open, everything else
// requires an authenticated session.
type AuthMiddlewareHandler struct {
	session              authChecker
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(session authChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		session: session,
		allowedPaths: map[string]bool{
			// login page
			"/": true,

			// session endpoints
			"/a/login":   true,
			"/a/logout":  true,
			"/a/session": true,

			"/version": true,
		},
		allowedPathsPrefixes: []string{
			"/static/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			if !h.session.IsAuthenticated() {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Tracef("[auth middleware] unauthenticated %s => %s", reqIp, r.URL.Path)
				span.SetStatus(codes.Error, "not-authenticated")

				// browsers get bounced to the login page, api clients a 401
				if strings.Contains(r.Header.Get("Accept"), "text/html") {
					http.Redirect(w, r, "/", http.StatusFound)
					return
				}
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
