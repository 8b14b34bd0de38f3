package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salonadmin/internal/config"
	"salonadmin/internal/metrics"
	"salonadmin/internal/models"
	"salonadmin/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

// earlyRefreshLeeway is how close to expiry the access token may get before
// the client renews it ahead of sending a request.
const earlyRefreshLeeway = 30 * time.Second

var errNoRefreshToken = errors.New("api: no refresh token stored")

// Client is the authenticated HTTP client for the salon backend. Every
// outbound call goes through it: it attaches the bearer token from the
// session store, stamps a request ID, and runs the 401 refresh-and-replay
// protocol. The session store is injected so the client is testable with
// fake sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     zerolog.Logger
	limiter    *rate.Limiter
	refresh    singleflight.Group

	onSessionExpired func()
}

func NewClient(cfg config.APIConfig, store session.Store, logger *zerolog.Logger) *Client {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "api-client").Logger()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 5
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		logger:     base,
		limiter:    limiter,
	}
}

// OnSessionExpired registers a hook invoked after the client clears the
// session on an unrecoverable 401. The view layer uses it to navigate to the
// login screen.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any, endpoint string) error {
	return c.call(ctx, http.MethodGet, path, query, nil, out, endpoint)
}

func (c *Client) post(ctx context.Context, path string, body, out any, endpoint string) error {
	return c.call(ctx, http.MethodPost, path, nil, body, out, endpoint)
}

func (c *Client) put(ctx context.Context, path string, body, out any, endpoint string) error {
	return c.call(ctx, http.MethodPut, path, nil, body, out, endpoint)
}

func (c *Client) patch(ctx context.Context, path string, body, out any, endpoint string) error {
	return c.call(ctx, http.MethodPatch, path, nil, body, out, endpoint)
}

func (c *Client) delete(ctx context.Context, path string, endpoint string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil, endpoint)
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any, endpoint string) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}
	return c.doWithAuthRetry(ctx, method, path, query, payload, out, endpoint, 0)
}

// doWithAuthRetry executes the request and applies the 401 recovery contract:
// at most one token refresh and one replay per original request, with the
// attempt counter threaded explicitly. Any other failure propagates
// unmodified. An unrecoverable 401 clears the session before returning.
func (c *Client) doWithAuthRetry(ctx context.Context, method, path string, query url.Values, payload []byte, out any, endpoint string, attempt int) error {
	if attempt == 0 {
		c.refreshIfExpiring(ctx)
	}

	status, respBody, err := c.send(ctx, method, path, query, payload)
	if err != nil {
		metrics.IncRequest(endpoint, "network_error")
		return &NetworkError{Err: err}
	}

	if status == http.StatusUnauthorized {
		if attempt == 0 {
			if refreshErr := c.refreshSession(ctx); refreshErr == nil {
				c.logger.Debug().Str("endpoint", endpoint).Msg("token refreshed, replaying request")
				return c.doWithAuthRetry(ctx, method, path, query, payload, out, endpoint, attempt+1)
			}
		}
		c.forceLogout(ctx)
		metrics.IncRequest(endpoint, "unauthorized")
		return ErrUnauthorized
	}

	if status >= 300 {
		metrics.IncRequest(endpoint, "error")
		return statusError(status, string(respBody))
	}

	metrics.IncRequest(endpoint, "ok")
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	// Attach the bearer token if a session exists; some endpoints are
	// public and go out unauthenticated.
	if sess, loadErr := c.store.Load(ctx); loadErr == nil && sess.IsAuthenticated() {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request")

	return resp.StatusCode, data, nil
}

// refreshIfExpiring renews the token pair when the access token is about to
// expire, so most requests go out with a token the backend will still accept.
// Best effort: any failure here is left to the 401 recovery path.
func (c *Client) refreshIfExpiring(ctx context.Context) {
	sess, err := c.store.Load(ctx)
	if err != nil || !sess.IsAuthenticated() || sess.RefreshToken == "" {
		return
	}
	if !session.TokenExpiresWithin(sess.AccessToken, earlyRefreshLeeway) {
		return
	}

	c.logger.Debug().Msg("access token near expiry, refreshing early")
	_ = c.refreshSession(ctx)
}

// refreshSession exchanges the stored refresh token for a new pair and saves
// it. Concurrent 401s share a single in-flight refresh via singleflight; the
// token issuance is idempotent on the backend, so last-writer-wins on the
// store is acceptable either way.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		sess, err := c.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		if sess == nil || sess.RefreshToken == "" {
			return nil, errNoRefreshToken
		}

		auth, err := c.postRefresh(ctx, sess.RefreshToken)
		if err != nil {
			metrics.IncRefresh("failed")
			return nil, err
		}

		newSess := &session.Session{
			AccessToken:  auth.Tokens.AccessToken,
			RefreshToken: auth.Tokens.RefreshToken,
			User:         &auth.User,
		}
		if err := c.store.Save(ctx, newSess); err != nil {
			metrics.IncRefresh("failed")
			return nil, err
		}

		metrics.IncRefresh("ok")
		return nil, nil
	})
	if err != nil && !errors.Is(err, errNoRefreshToken) {
		c.logger.Warn().Err(err).Msg("token refresh failed")
	}
	return err
}

// postRefresh hits the refresh endpoint directly, outside the authed path:
// no bearer token and no retry wrapper apply to it.
func (c *Client) postRefresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	payload, err := json.Marshal(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, string(data))
	}

	var auth models.AuthResponse
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	return &auth, nil
}

func (c *Client) forceLogout(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear session on forced logout")
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
