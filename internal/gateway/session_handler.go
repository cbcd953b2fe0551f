package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/tamasolah/travelair/internal/middleware"
	"github.com/tamasolah/travelair/internal/session"
	"github.com/tamasolah/travelair/internal/telemetry/metrics"
	"github.com/tamasolah/travelair/internal/telemetry/tracing"
	"github.com/tamasolah/travelair/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// SessionHandler serves the login, logout and session info endpoints on top
// of the shared session store.
type SessionHandler struct {
	sessionStore   *session.Store
	metricsManager *metrics.Manager
	versionInfo    string
}

func NewSessionHandler(
	sessionStore *session.Store,
	metricsManager *metrics.Manager,
	versionInfo string,
) *SessionHandler {
	return &SessionHandler{
		sessionStore:   sessionStore,
		metricsManager: metricsManager,
		versionInfo:    versionInfo,
	}
}

func (handler *SessionHandler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	sessionSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	sessionSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	sessionSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")
	sessionSubrouter.
		HandleFunc("/session", handler.handleSessionInfo).
		Methods("GET", "OPTIONS").Name("session")

	// rate limit the session endpoints to prevent credential abuse
	sessionSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
	sessionSubrouter.Use(middleware.Cors())
}

func (handler *SessionHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var creds session.Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		creds = session.Credentials{
			Username: r.Form.Get("username"),
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if !emailRegex.MatchString(creds.Email) {
		http.Error(w, "error, email invalid", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	if err := handler.sessionStore.Login(ctx, creds); err != nil {
		handler.metricsManager.CounterLoginFailures.Inc()
		if errors.Is(err, session.ErrLoginFailed) {
			log.Tracef("failed login attempt for user: %s", creds.Username)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed for user %s: %s", creds.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLogins.Inc()
	log.Trace("new login success")

	userBytes, err := json.Marshal(handler.sessionStore.User())
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal logged user error: %s", err)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, userBytes)
}

func (handler *SessionHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "sessionHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// logging out without a session is fine, the result is the same
	handler.sessionStore.Logout()
	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *SessionHandler) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "sessionHandler.sessionInfo")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type sessionInfo struct {
		Authenticated bool          `json:"authenticated"`
		User          *session.User `json:"user,omitempty"`
	}

	info := sessionInfo{
		Authenticated: handler.sessionStore.IsAuthenticated(),
		User:          handler.sessionStore.User(),
	}

	infoBytes, err := json.Marshal(info)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal session info error: %s", err)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, infoBytes)
}

func (handler *SessionHandler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
