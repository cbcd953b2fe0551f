package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tamasolah/travelair/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUnauthorized is returned for every 401 response from the travel API. A
// 401 is the API's only way of signaling an invalid or expired credential,
// there is no token refresh.
var ErrUnauthorized = errors.New("travel api: unauthorized")

type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("travel api: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("travel api: status %d", e.StatusCode)
}

type tokenSource interface {
	AccessToken() string
}

// Client talks to the remote travel API. All requests go through a single
// dispatch which attaches the bearer token when one is present and maps 401
// responses to ErrUnauthorized uniformly, invoking the onUnauthorized hook.
// The client never mutates the session itself, the hook owner decides the
// policy.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        tokenSource
	onUnauthorized func()
}

func NewClient(baseURL string, httpClient *http.Client, session tokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    session,
	}
}

// OnUnauthorized sets the hook invoked on every 401 response from the API.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "travelapi.do")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("api.path", path),
	)

	var bodyReader io.Reader
	if reqBody != nil {
		bodyBytes, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// attach the bearer credential only when present, an empty Authorization
	// header must never be sent
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Tracef("travel api: unauthorized response for %s %s", method, path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(respBytes, &errResp)
		return &APIError{StatusCode: resp.StatusCode, Detail: errResp.Detail}
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
