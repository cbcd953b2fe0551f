package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tamasolah/travelair/internal/middleware"

	"github.com/stretchr/testify/assert"
)

type stubSession struct {
	authenticated bool
}

func (s *stubSession) IsAuthenticated() bool {
	return s.authenticated
}

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	session := &stubSession{}
	authMiddleware := middleware.NewAuthMiddlewareHandler(session)

	testCases := []struct {
		name               string
		path               string
		method             string
		accept             string
		authenticated      bool
		expectedStatusCode int
		expectedLocation   string
	}{
		{
			name:               "LoginPageWithoutSession",
			path:               "/",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "SessionEndpointWithoutSession",
			path:               "/a/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "LogoutAlwaysAllowed",
			path:               "/a/logout",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "GatedPageApiClientWithoutSession",
			path:               "/oferte",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "GatedPageBrowserWithoutSession",
			path:               "/rezervarile-mele",
			method:             "GET",
			accept:             "text/html,application/xhtml+xml",
			expectedStatusCode: http.StatusFound,
			expectedLocation:   "/",
		},
		{
			name:               "GatedPageWithSession",
			path:               "/oferte",
			method:             "GET",
			authenticated:      true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "GatedPostWithSession",
			path:               "/rezervari",
			method:             "POST",
			authenticated:      true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "OptionsPreflightAlwaysOk",
			path:               "/oferte",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "StaticAssetsAlwaysAllowed",
			path:               "/static/css/main.css",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			session.authenticated = tc.authenticated

			req, err := http.NewRequest(tc.method, tc.path, nil)
			assert.NoError(t, err)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}

			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			if tc.expectedLocation != "" {
				assert.Equal(t, tc.expectedLocation, rr.Header().Get("Location"))
			}
		})
	}
}
