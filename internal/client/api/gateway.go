package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/packtrack/packtrack/internal/logging"
)

// Credentials supplies the bearer token for outbound calls and the
// refresh protocol invoked on an authorization failure. Implemented by
// session.Manager.
type Credentials interface {
	// Token returns the current access token, or "" when logged out.
	Token() string

	// Refresh rotates the token pair. Implementations must coalesce
	// concurrent calls into one in-flight refresh and force a logout
	// when the refresh itself is rejected.
	Refresh(ctx context.Context) error
}

// expiryAware is an optional Credentials extension: when the holder can
// tell its access token is already expired, the gateway refreshes before
// issuing the request instead of burning a guaranteed 401 round-trip.
type expiryAware interface {
	TokenExpired() bool
}

// Gateway is the single chokepoint for all remote calls. It attaches
// auth headers, decodes the shared response envelope, and applies the
// bounded refresh-then-retry policy on authorization failures.
type Gateway struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	log     logging.Logger
}

// NewGateway builds a gateway for the given API base URL. A zero timeout
// leaves requests unbounded (long-running packing computations rely on
// the server to finish or fail).
func NewGateway(baseURL string, timeout time.Duration, log logging.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BindCredentials attaches the credential source. Wired after construction
// because the session manager itself talks through this gateway.
func (g *Gateway) BindCredentials(c Credentials) {
	g.creds = c
}

// Call issues an authorized JSON request. body is marshalled as the
// request payload when non-nil; out receives the envelope's data field
// when non-nil. On a 401 the credentials are refreshed once and the
// request re-issued once; the retry's result is final.
func (g *Gateway) Call(ctx context.Context, method, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return g.callWithRetry(ctx, method, path, "application/json", payload, out)
}

// CallNoAuth issues a request without a bearer header and without the
// 401 retry. Used for the session lifecycle endpoints (login, register,
// refresh) which authenticate through their payload.
func (g *Gateway) CallNoAuth(ctx context.Context, method, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return g.do(ctx, method, path, "application/json", payload, out, false)
}

// Upload issues an authorized multipart POST with one file part plus any
// extra form fields. The multipart body is buffered so the single 401
// retry can replay it.
func (g *Gateway) Upload(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to build multipart body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}

	return g.callWithRetry(ctx, http.MethodPost, path, mw.FormDataContentType(), buf.Bytes(), out)
}

func (g *Gateway) callWithRetry(ctx context.Context, method, path, contentType string, payload []byte, out any) error {
	if ea, ok := g.creds.(expiryAware); ok && ea.TokenExpired() {
		// Best effort: the 401 path below stays authoritative.
		if err := g.creds.Refresh(ctx); err != nil && !errors.Is(err, ErrNoSession) {
			g.log.Debug(ctx, "proactive token refresh failed", "error", err)
		}
	}

	err := g.do(ctx, method, path, contentType, payload, out, true)
	if err == nil || g.creds == nil || !errors.Is(err, ErrUnauthorized) {
		return err
	}

	if refreshErr := g.creds.Refresh(ctx); refreshErr != nil {
		// The manager has already forced a logout; surface the original
		// authorization failure.
		return err
	}

	// Exactly one retry with the fresh token; its result is final.
	return g.do(ctx, method, path, contentType, payload, out, true)
}

func (g *Gateway) do(ctx context.Context, method, path, contentType string, payload []byte, out any, authorized bool) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if authorized && g.creds != nil {
		if token := g.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed envelope on a non-2xx status still yields a usable
		// StatusError below, so the decode error only matters on success.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}
	if len(raw) > 0 && !env.Success {
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return payload, nil
}
