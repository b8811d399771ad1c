package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"luwakpos/api/handler"
	"luwakpos/api/middleware"
	"luwakpos/api/routes"
	"luwakpos/internal/dto"
	"luwakpos/internal/entity"
	"luwakpos/internal/service"
	"luwakpos/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories; only the behavior the auth flow exercises.

type memUsers struct {
	users []*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(r.users) + 1)
	r.users = append(r.users, u)
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) Update(_ context.Context, _ *entity.User) error { return nil }
func (r *memUsers) UpdatePassword(_ context.Context, _ int64, _ string) error {
	return nil
}

type memSessions struct {
	sessions []*entity.Session
}

func (r *memSessions) Create(_ context.Context, s *entity.Session) error {
	s.ID = uuid.New()
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *memSessions) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memSessions) TouchRefresh(_ context.Context, _ uuid.UUID, _ time.Time) error { return nil }
func (r *memSessions) Touch(_ context.Context, _ uuid.UUID, _ time.Time) error        { return nil }

type memRefresh struct {
	rows []*entity.RefreshToken
}

func (r *memRefresh) Create(_ context.Context, t *entity.RefreshToken) error {
	t.ID = uuid.New()
	r.rows = append(r.rows, t)
	return nil
}

func (r *memRefresh) FindByDigest(_ context.Context, digest string) (*entity.RefreshToken, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].TokenDigest == digest {
			return r.rows[i], nil
		}
	}
	return nil, nil
}

func (r *memRefresh) Revoke(_ context.Context, id uuid.UUID) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Revoked = true
		}
	}
	return nil
}

func (r *memRefresh) RevokeByDigest(_ context.Context, digest string) (int64, error) {
	var n int64
	for _, row := range r.rows {
		if row.TokenDigest == digest && !row.Revoked {
			row.Revoked = true
			n++
		}
	}
	return n, nil
}

func (r *memRefresh) RevokeAllBySession(_ context.Context, sessionID uuid.UUID) error {
	for _, row := range r.rows {
		if row.SessionID == sessionID {
			row.Revoked = true
		}
	}
	return nil
}

func (r *memRefresh) DeleteExpired(_ context.Context) error { return nil }

type memPasscodes struct{}

func (memPasscodes) Create(_ context.Context, _ *entity.Passcode) error { return nil }
func (memPasscodes) FindLatest(_ context.Context, _ string) (*entity.Passcode, error) {
	return nil, nil
}
func (memPasscodes) Revoke(_ context.Context, _ uuid.UUID) error { return nil }
func (memPasscodes) DeleteExpired(_ context.Context) error       { return nil }

type memEmployees struct{}

func (memEmployees) Create(_ context.Context, _ *entity.Employee) error { return nil }
func (memEmployees) FindByID(_ context.Context, _ int64) (*entity.Employee, error) {
	return nil, nil
}
func (memEmployees) FindByUserID(_ context.Context, _ int64) (*entity.Employee, error) {
	return nil, nil
}
func (memEmployees) FindByDNI(_ context.Context, _ string) (*entity.Employee, error) {
	return nil, nil
}
func (memEmployees) List(_ context.Context, _ int) ([]entity.Employee, error) { return nil, nil }
func (memEmployees) Update(_ context.Context, _ *entity.Employee) error       { return nil }

type memSecurityLogs struct {
	actions []entity.SecurityAction
}

func (r *memSecurityLogs) Log(_ context.Context, l *entity.SecurityLog) error {
	r.actions = append(r.actions, l.Action)
	return nil
}

type noMail struct{}

func (noMail) SendPasscodeEmail(_ context.Context, _, _ string) error { return nil }

type flowFixture struct {
	server   *httptest.Server
	client   *http.Client
	jar      http.CookieJar
	manager  utils.TokenManager
	security *memSecurityLogs
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	manager := utils.TokenManager{
		Secret:         []byte("flow-test-secret"),
		Issuer:         "luwakpos",
		AccessTokenTTL: time.Minute,
		AdminRole:      "administrador",
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &memUsers{}
	security := &memSecurityLogs{}

	hash, err := utils.HashSecret("secret123")
	require.NoError(t, err)
	username := "maria"
	require.NoError(t, users.Create(context.Background(), &entity.User{
		Email:        "maria@luwak.local",
		Username:     &username,
		PasswordHash: hash,
		Role:         "empleado",
		RoleType:     entity.RoleTypeMesero,
	}))

	authService := service.NewAuthService(
		users,
		&memSessions{},
		&memRefresh{},
		memPasscodes{},
		memEmployees{},
		security,
		noMail{},
		service.BcryptHasher{},
		utils.TokenDigester{Key: []byte("flow-digest-key")},
		service.JWTAccessIssuer{Manager: &manager},
		service.RealClock{},
		logger,
		service.AuthConfig{
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			PasscodeTTL:     3 * time.Minute,
			AdminRole:       "administrador",
			StandardRole:    "empleado",
		},
	)

	authHandler := handler.NewAuthHandler(authService, &manager, validator.New())
	authHandler.Cookies = handler.CookieConfig{Secure: false}

	e := echo.New()
	router := routes.NewRouter(e, authHandler, nil, nil, nil, middleware.AuthMiddleware{Tokens: &manager})
	router.RegisterRoutes()

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &flowFixture{
		server:   server,
		client:   &http.Client{Jar: jar},
		jar:      jar,
		manager:  manager,
		security: security,
	}
}

func (f *flowFixture) post(t *testing.T, path, body string) (*http.Response, dto.Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(http.MethodPost, f.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return f.do(t, req)
}

func (f *flowFixture) get(t *testing.T, path string) (*http.Response, dto.Response) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, f.server.URL+path, nil)
	require.NoError(t, err)
	return f.do(t, req)
}

func (f *flowFixture) do(t *testing.T, req *http.Request) (*http.Response, dto.Response) {
	t.Helper()
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope dto.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

// setCookie plants a cookie directly in the jar, scoped to the given path.
func (f *flowFixture) setCookie(t *testing.T, name, value, path string) {
	t.Helper()
	u, err := url.Parse(f.server.URL + path)
	require.NoError(t, err)
	f.jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: path}})
}

// refreshCookieValue reads the refresh cookie currently in the jar.
func (f *flowFixture) refreshCookieValue(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(f.server.URL + handler.RefreshCookiePath)
	require.NoError(t, err)
	for _, cookie := range f.jar.Cookies(u) {
		if cookie.Name == handler.RefreshTokenCookie {
			return cookie.Value
		}
	}
	return ""
}

// The full client lifecycle against the real routes: login, expiry,
// refresh-and-retry, replay detection, and logout idempotence.
func TestAuthFlow(t *testing.T) {
	f := newFlowFixture(t)

	// unauthenticated access is told to log in
	resp, envelope := f.get(t, "/api/auth/user")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeTokenMissing, envelope.ErrorCode)

	// login sets both cookies
	resp, envelope = f.post(t, "/api/auth/login", `{"username":"maria","password":"secret123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)
	firstRefresh := f.refreshCookieValue(t)
	require.NotEmpty(t, firstRefresh)

	resp, envelope = f.get(t, "/api/auth/user")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// simulate access-token expiry without waiting the TTL out
	expiredManager := f.manager
	expiredManager.AccessTokenTTL = -time.Minute
	expired, _, err := expiredManager.Issue("1", "maria@luwak.local", "empleado")
	require.NoError(t, err)
	f.setCookie(t, middleware.AccessTokenCookie, expired, "/")

	resp, envelope = f.get(t, "/api/auth/user")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeTokenExpired, envelope.ErrorCode)

	// refresh rotates the pair and restores access
	resp, envelope = f.post(t, "/api/auth/refresh", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	secondRefresh := f.refreshCookieValue(t)
	require.NotEmpty(t, secondRefresh)
	assert.NotEqual(t, firstRefresh, secondRefresh)

	resp, _ = f.get(t, "/api/auth/user")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// replaying the rotated token kills the whole chain
	f.setCookie(t, handler.RefreshTokenCookie, firstRefresh, handler.RefreshCookiePath)
	resp, envelope = f.post(t, "/api/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeRefreshTokenExpired, envelope.ErrorCode)
	assert.Contains(t, f.security.actions, entity.RefreshReplay)

	f.setCookie(t, handler.RefreshTokenCookie, secondRefresh, handler.RefreshCookiePath)
	resp, envelope = f.post(t, "/api/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeRefreshTokenExpired, envelope.ErrorCode)

	// logout always succeeds, even repeated with a dead token
	resp, envelope = f.post(t, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)

	resp, envelope = f.post(t, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
}

func TestRefreshWithoutCookie(t *testing.T) {
	f := newFlowFixture(t)

	resp, envelope := f.post(t, "/api/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeRefreshTokenMissing, envelope.ErrorCode)
}
