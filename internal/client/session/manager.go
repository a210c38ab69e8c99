// Package session owns the authenticated identity and the access/refresh
// token pair for the current run.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/packtrack/packtrack/internal/client/api"
	"github.com/packtrack/packtrack/internal/client/models"
	"github.com/packtrack/packtrack/internal/client/repositories/kvstore"
	"github.com/packtrack/packtrack/internal/logging"
)

// Event marks a session state transition observed by the UI layer
// (prompt/navigation switches on it).
type Event int

const (
	// EventLoggedIn fires after a successful login installs a session.
	EventLoggedIn Event = iota
	// EventLoggedOut fires after an explicit or forced logout.
	EventLoggedOut
)

// Gateway is the transport subset the manager needs. Satisfied by
// *api.Gateway; replaced by fakes in tests.
type Gateway interface {
	Call(ctx context.Context, method, path string, body, out any) error
	CallNoAuth(ctx context.Context, method, path string, body, out any) error
}

// Manager owns the Session: it loads and persists it through the kvstore,
// performs the login/register/refresh/logout lifecycle against the remote
// API, and hands the current access token to the request gateway.
//
// Manager implements api.Credentials. Refresh is single-flight: any number
// of concurrently failing requests share one in-flight refresh.
type Manager struct {
	gw  Gateway
	kv  kvstore.Repository
	log logging.Logger

	mu   sync.Mutex
	sess models.Session // zero value means logged out

	notify func(Event)
	sf     singleflight.Group
}

// NewManager wires a manager over the transport and the persistent store.
func NewManager(gw Gateway, kv kvstore.Repository, log logging.Logger) *Manager {
	return &Manager{gw: gw, kv: kv, log: log}
}

// Notify registers the single observer of session transitions. Must be
// called during wiring, before any lifecycle operation.
func (m *Manager) Notify(fn func(Event)) {
	m.notify = fn
}

func (m *Manager) emit(e Event) {
	if m.notify != nil {
		m.notify(e)
	}
}

// LoadStored restores a persisted session, if any. Called exactly once at
// startup. It never fails the caller: storage trouble degrades to "no
// session" and is logged only.
func (m *Manager) LoadStored(ctx context.Context) {
	raw, err := m.kv.Get(ctx, kvstore.KeySession)
	if err != nil {
		m.log.Warn(ctx, "failed to read stored session", "error", err)
		return
	}
	if raw == nil {
		return
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		m.log.Warn(ctx, "stored session is corrupt, ignoring", "error", err)
		return
	}
	if !sess.Valid() {
		return
	}

	m.mu.Lock()
	m.sess = sess
	m.mu.Unlock()
	m.log.Info(ctx, "session restored", "user", sess.User.Email)
}

type deviceInfo struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
}

type loginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Device   deviceInfo `json:"device"`
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// Login authenticates with the remote API, installs and persists the
// returned session, and emits EventLoggedIn. The server message is
// surfaced unchanged on failure.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	req := loginRequest{Email: email, Password: password, Device: m.device(ctx)}

	var resp tokenResponse
	if err := m.gw.CallNoAuth(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return err
	}

	sess := models.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if !sess.Valid() {
		return fmt.Errorf("%w: incomplete token pair in login response", api.ErrUnavailable)
	}

	m.install(ctx, sess)
	m.emit(EventLoggedIn)
	return nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Register creates an account. It deliberately does not install a session:
// the account needs activation before the first login. Returns the server
// acknowledgment message.
func (m *Manager) Register(ctx context.Context, name, email, password, phone string) (string, error) {
	req := registerRequest{Name: name, Email: email, Password: password, Phone: phone}

	var ack struct {
		Message string `json:"message"`
	}
	if err := m.gw.CallNoAuth(ctx, http.MethodPost, "/register", req, &ack); err != nil {
		return "", err
	}
	if ack.Message == "" {
		ack.Message = "account created, check your email for the activation link"
	}
	return ack.Message, nil
}

// CheckVerified reports whether the account passed the activation step.
func (m *Manager) CheckVerified(ctx context.Context, email string) (bool, error) {
	var resp struct {
		Verified bool `json:"verified"`
	}
	body := map[string]string{"email": email}
	if err := m.gw.CallNoAuth(ctx, http.MethodPost, "/check-verified", body, &resp); err != nil {
		return false, err
	}
	return resp.Verified, nil
}

// ResendActivation asks the server to re-send the activation email.
func (m *Manager) ResendActivation(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return m.gw.CallNoAuth(ctx, http.MethodPost, "/resend-activation", body, nil)
}

// Refresh rotates the token pair. Concurrent callers are coalesced into a
// single in-flight refresh whose result they all share. Any failure other
// than a missing refresh token forces a full logout before returning.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.sf.Do("refresh", func() (any, error) {
		return nil, m.refresh(ctx)
	})
	return err
}

func (m *Manager) refresh(ctx context.Context) error {
	m.mu.Lock()
	refreshToken := m.sess.RefreshToken
	m.mu.Unlock()

	if refreshToken == "" {
		return api.ErrNoSession
	}

	body := map[string]string{"refresh_token": refreshToken}
	var resp tokenResponse
	if err := m.gw.CallNoAuth(ctx, http.MethodPost, "/refresh-token", body, &resp); err != nil {
		m.log.Warn(ctx, "token refresh rejected, logging out", "error", err)
		m.Logout(ctx)
		return err
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		m.Logout(ctx)
		return fmt.Errorf("%w: incomplete token pair in refresh response", api.ErrUnavailable)
	}

	m.mu.Lock()
	// Both tokens rotate together; the user record is kept unless the
	// server sent a fresh one.
	m.sess.AccessToken = resp.AccessToken
	m.sess.RefreshToken = resp.RefreshToken
	if resp.User.ID != "" {
		m.sess.User = resp.User
	}
	sess := m.sess
	m.mu.Unlock()

	m.persist(ctx, sess)
	return nil
}

// Logout clears the session from memory and from the persistent store and
// emits EventLoggedOut. Safe to call when already logged out.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.sess = models.Session{}
	m.mu.Unlock()

	if err := m.kv.Delete(ctx, kvstore.KeySession); err != nil {
		m.log.Warn(ctx, "failed to clear stored session", "error", err)
	}
	m.emit(EventLoggedOut)
}

// UpdateProfile pushes editable profile fields to the server and, on
// success, updates the held user record and re-persists the session.
func (m *Manager) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := m.gw.Call(ctx, http.MethodPost, "/update-profile", update, &resp); err != nil {
		return err
	}

	m.mu.Lock()
	if resp.User.ID != "" {
		m.sess.User = resp.User
	} else {
		if update.Name != "" {
			m.sess.User.Name = update.Name
		}
		if update.Phone != "" {
			m.sess.User.Phone = update.Phone
		}
		if update.Company != "" {
			m.sess.User.Company = update.Company
		}
		if update.Address != "" {
			m.sess.User.Address = update.Address
		}
	}
	sess := m.sess
	m.mu.Unlock()

	if sess.Valid() {
		m.persist(ctx, sess)
	}
	return nil
}

// Token returns the current access token, "" when logged out.
// Part of the api.Credentials contract.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.AccessToken
}

// Authenticated reports whether a session is installed.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Valid()
}

// CurrentUser returns a copy of the held user record, or nil when logged
// out.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.sess.Valid() {
		return nil
	}
	u := m.sess.User
	return &u
}

// TokenExpired reports whether the held access token carries an exp claim
// in the past. The token is parsed without signature verification: the
// client only peeks at the claim, the server stays authoritative. Used by
// the gateway to refresh proactively instead of collecting a certain 401.
func (m *Manager) TokenExpired() bool {
	token := m.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (m *Manager) install(ctx context.Context, sess models.Session) {
	m.mu.Lock()
	m.sess = sess
	m.mu.Unlock()
	m.persist(ctx, sess)
}

func (m *Manager) persist(ctx context.Context, sess models.Session) {
	raw, err := json.Marshal(sess)
	if err != nil {
		m.log.Error(ctx, "failed to encode session", "error", err)
		return
	}
	if err := m.kv.Set(ctx, kvstore.KeySession, raw); err != nil {
		m.log.Warn(ctx, "failed to persist session", "error", err)
	}
}

// device returns the per-install device identifier, creating and
// persisting one on first use. Sent as best-effort login metadata.
func (m *Manager) device(ctx context.Context) deviceInfo {
	info := deviceInfo{Platform: runtime.GOOS}

	raw, err := m.kv.Get(ctx, kvstore.KeyDeviceID)
	if err == nil && len(raw) > 0 {
		info.ID = string(raw)
		return info
	}

	info.ID = uuid.NewString()
	if err := m.kv.Set(ctx, kvstore.KeyDeviceID, []byte(info.ID)); err != nil {
		m.log.Debug(ctx, "failed to persist device id", "error", err)
	}
	return info
}
