package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tamasolah/travelair/internal/localstore"
	"github.com/tamasolah/travelair/internal/telemetry/tracing"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// storage keys, browser localStorage naming kept for compatibility with
// existing session dirs
const (
	storageKeyUser         = "user"
	storageKeyAccessToken  = "accessToken"
	storageKeyRefreshToken = "refreshToken"
)

var ErrLoginFailed = errors.New("authentication failed")

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store owns the authentication token and user identity for the whole
// process. It is the single writer of session state: consumers read via the
// getters and mutate only through Login and Logout. State is persisted to
// durable local storage and survives restarts.
type Store struct {
	tokenURL   string
	httpClient *http.Client
	storage    *localstore.Store

	mutex       sync.RWMutex
	user        *User
	accessToken string
	subscribers []func()
}

func NewStore(tokenURL string, httpClient *http.Client, storage *localstore.Store) *Store {
	return &Store{
		tokenURL:   tokenURL,
		httpClient: httpClient,
		storage:    storage,
	}
}

// Initialize hydrates the session from persisted storage. Malformed persisted
// state fails closed: the broken entry is dropped instead of erroring at boot.
func (s *Store) Initialize() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if token, err := s.storage.Get(storageKeyAccessToken); err == nil {
		s.accessToken = token
	}

	userJSON, err := s.storage.Get(storageKeyUser)
	if err != nil {
		return
	}

	var user User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		log.Warnf("session: malformed persisted user, dropping it: %s", err)
		if err := s.storage.Remove(storageKeyUser); err != nil {
			log.Errorf("session: remove malformed user entry: %s", err)
		}
		return
	}
	s.user = &user
}

// Login exchanges the credentials for a token pair at the remote API. On any
// failure the session state is left exactly as it was, in memory and in
// storage. The email is kept verbatim from the input, it is not part of the
// credential exchange.
func (s *Store) Login(ctx context.Context, creds Credentials) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "session.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	reqBody, err := json.Marshal(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		return fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read login response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		// the detail message is optional, a generic fallback is used otherwise
		_ = json.Unmarshal(respBytes, &errResp)
		if errResp.Detail != "" {
			return fmt.Errorf("%w: %s", ErrLoginFailed, errResp.Detail)
		}
		return ErrLoginFailed
	}

	var tokenPair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(respBytes, &tokenPair); err != nil {
		return fmt.Errorf("unmarshal login response: %w", err)
	}
	if tokenPair.Access == "" {
		return fmt.Errorf("%w: empty access token in response", ErrLoginFailed)
	}

	user := User{Username: creds.Username, Email: creds.Email}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	s.mutex.Lock()
	if err := s.persist(string(userJSON), tokenPair.Access, tokenPair.Refresh); err != nil {
		s.mutex.Unlock()
		return fmt.Errorf("persist session: %w", err)
	}
	s.user = &user
	s.accessToken = tokenPair.Access
	s.mutex.Unlock()

	log.Debugf("session: login successful for user: %s", creds.Username)
	s.notify()

	return nil
}

// persist writes all session entries to storage. On a mid-write failure, the
// entries written so far are restored to the values they held before the call,
// so storage never ends up holding a mix of the old and the new session.
// Callers must hold the write lock.
func (s *Store) persist(userJSON, accessToken, refreshToken string) error {
	entries := []struct {
		key string
		val string
	}{
		{storageKeyUser, userJSON},
		{storageKeyAccessToken, accessToken},
		{storageKeyRefreshToken, refreshToken},
	}

	prior := make(map[string]string, len(entries))
	for _, entry := range entries {
		if val, err := s.storage.Get(entry.key); err == nil {
			prior[entry.key] = val
		}
	}

	for i, entry := range entries {
		err := s.storage.Set(entry.key, entry.val)
		if err == nil {
			continue
		}
		for _, w := range entries[:i] {
			if old, found := prior[w.key]; found {
				if restoreErr := s.storage.Set(w.key, old); restoreErr != nil {
					log.Errorf("session: restore %s: %s", w.key, restoreErr)
				}
			} else if remErr := s.storage.Remove(w.key); remErr != nil {
				log.Errorf("session: rollback %s: %s", w.key, remErr)
			}
		}
		return err
	}
	return nil
}

// Logout clears the session from memory and removes all persisted entries.
// It is idempotent, logging out an empty session is a no-op.
func (s *Store) Logout() {
	s.mutex.Lock()
	s.user = nil
	s.accessToken = ""
	for _, key := range []string{storageKeyUser, storageKeyAccessToken, storageKeyRefreshToken} {
		if err := s.storage.Remove(key); err != nil {
			log.Errorf("session: remove %s on logout: %s", key, err)
		}
	}
	s.mutex.Unlock()

	s.notify()
}

// IsAuthenticated is derived from the access token on every call, it is never
// stored separately.
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

func (s *Store) AccessToken() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.accessToken
}

func (s *Store) User() *User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers a callback invoked after every login and logout.
func (s *Store) Subscribe(fn func()) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.mutex.RLock()
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mutex.RUnlock()

	for _, fn := range subscribers {
		fn()
	}
}

// TokenExpiry decodes the expiry claim of the access token, for display and
// diagnostics only. The signature is not verified here, the remote API is the
// sole authority on token validity. The refresh token is persisted but never
// used to renew the access token.
func (s *Store) TokenExpiry() (time.Time, error) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, errors.New("no access token")
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("get expiry claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, errors.New("access token has no expiry claim")
	}

	return exp.Time, nil
}
