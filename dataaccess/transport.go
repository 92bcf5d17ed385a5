package dataaccess

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/jsonx"
)

// AuthScheme selects the Authorization header format. The agent-builder
// backend takes organization-level keys as "ApiKey <key>"; agent runtime
// sessions take "Bearer <token>".
type AuthScheme string

const (
	AuthAPIKey AuthScheme = "ApiKey"
	AuthBearer AuthScheme = "Bearer"
)

const defaultTimeout = 30 * time.Second

// Transport is the configured HTTP client shared by one adapter: one
// base URL, one credential, JSON in and out. It is immutable after
// construction and safe for concurrent use.
//
// There are no retries and no circuit breaking; a failed request
// surfaces to the caller, and for subscriptions the next poll tick is
// the retry.
type Transport struct {
	baseURL    string
	scheme     AuthScheme
	key        string
	httpClient *http.Client
	logger     *zap.Logger

	warnNoKey sync.Once
}

// NewTransport creates a transport for one backend service. An empty key
// is allowed: requests are still sent and a single warning is logged,
// matching the dashboard's behavior when no credential is configured.
func NewTransport(baseURL string, scheme AuthScheme, key string, timeout time.Duration, logger *zap.Logger) *Transport {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	t := &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		scheme:     scheme,
		key:        key,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("transport"),
	}

	if scheme == AuthBearer && key != "" {
		t.checkBearerExpiry()
	}
	return t
}

// checkBearerExpiry decodes a Bearer credential that looks like a JWT
// (unverified, claims only) and warns when it is already expired. The
// token is still sent; the backend is the authority.
func (t *Transport) checkBearerExpiry() {
	if strings.Count(t.key, ".") != 2 {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.key, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		t.logger.Warn("Bearer token is expired, requests will likely fail",
			zap.Time("expired_at", exp.Time))
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Do issues one JSON request. body is marshaled when non-nil; out is
// populated from the response body when non-nil. Non-2xx responses are
// logged here, once, and returned as *APIError.
func (t *Transport) Do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		if err := jsonx.EncodeTo(buf, body); err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf.B)
	}

	target := t.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if t.key == "" {
		t.warnNoKey.Do(func() {
			t.logger.Warn("No API credential configured, sending unauthenticated requests",
				zap.String("base_url", t.baseURL))
		})
	} else {
		req.Header.Set("Authorization", string(t.scheme)+" "+t.key)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Path:       path,
		}
		t.logger.Error("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return jsonx.Unmarshal(data, out)
}

// errorMessage pulls a human-readable message out of an error body. The
// backends disagree on the field name (detail, error, message); fall
// back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Err     string `json:"error"`
		Message string `json:"message"`
	}
	if err := jsonx.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Err != "":
			return payload.Err
		case payload.Message != "":
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}
