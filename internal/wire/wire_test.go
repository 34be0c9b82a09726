package wire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"smartride-portal/internal/cache"
	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/data/repository"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/listview"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func (m *memSessions) Create(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.Token] = &cp
	return nil
}

func (m *memSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || s.RevokedAt != nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Revoke(_ context.Context, token uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (m *memSessions) CleanExpiredSessions(context.Context) (int64, error) { return 0, nil }

type memChat struct {
	mu   sync.Mutex
	msgs map[uuid.UUID][]entity.ChatMessage
}

func (m *memChat) Append(_ context.Context, msgs ...*entity.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range msgs {
		m.msgs[msg.HistoryKey] = append(m.msgs[msg.HistoryKey], *msg)
	}
	return nil
}

func (m *memChat) History(_ context.Context, key uuid.UUID) ([]entity.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.ChatMessage{}, m.msgs[key]...), nil
}

func (m *memChat) Clear(_ context.Context, key uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.msgs, key)
	return nil
}

type idleTicker struct{}

func (idleTicker) Chan() <-chan time.Time { return nil }
func (idleTicker) Reset(time.Duration)    {}
func (idleTicker) Stop()                  {}

// newApp wires the portal against a fake backend serving routes.
func newApp(t *testing.T, routes map[string]http.HandlerFunc) *App {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	config := &utils.Config{
		App:       utils.AppConfig{Name: "smartride-portal", CORSOrigin: utils.DefaultCORSOrigin},
		Backend:   utils.BackendConfig{BaseURL: backend.URL + "/api/v1"},
		Session:   utils.SessionConfig{ExpiryHours: 24},
		Dashboard: utils.DashboardConfig{PollInterval: 8 * time.Second, IdleTimeout: time.Minute, CommissionPct: 10},
	}
	gw, err := gateway.NewClient(config.Backend, zap.NewNop())
	require.NoError(t, err)

	repo := &repository.Repository{
		Session: &memSessions{sessions: map[uuid.UUID]*entity.Session{}},
		Chat:    &memChat{msgs: map[uuid.UUID][]entity.ChatMessage{}},
	}
	idle := listview.WithTicker(func(time.Duration) listview.Ticker { return idleTicker{} })
	return Wiring(repo, gw, cache.NewMemory[gateway.UserProfile](), config, zap.NewNop(), idle)
}

func serve(app *App, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func passengerLogin(t *testing.T, app *App) *http.Cookie {
	t.Helper()
	rec := serve(app, http.MethodPost, "/passenger/login", `{"email":"asha@smartride.io","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := cookieNamed(rec, utils.SessionCookie)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	return cookie
}

var loginRoute = map[string]http.HandlerFunc{
	"POST /api/v1/auth/login": func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","role":"PASSENGER","name":"Asha","email":"asha@smartride.io"}`))
	},
}

func withLogin(routes map[string]http.HandlerFunc) map[string]http.HandlerFunc {
	for k, v := range loginRoute {
		routes[k] = v
	}
	return routes
}

func TestLoginSetsCookieAndAuthorizesBackendCalls(t *testing.T) {
	var authHeader string
	app := newApp(t, withLogin(map[string]http.HandlerFunc{
		"GET /api/v1/bookings/mine": func(w http.ResponseWriter, r *http.Request) {
			authHeader = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		},
	}))

	cookie := passengerLogin(t, app)
	assert.True(t, cookie.HttpOnly)

	rec := serve(app, http.MethodGet, "/passenger/bookings", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Bearer tok-1", authHeader)
}

func TestGuardRedirectsByRole(t *testing.T) {
	app := newApp(t, withLogin(map[string]http.HandlerFunc{}))

	rec := serve(app, http.MethodGet, "/driver/dashboard", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/driver/login", rec.Header().Get("Location"))

	rec = serve(app, http.MethodGet, "/admin/dashboard", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	cookie := passengerLogin(t, app)
	rec = serve(app, http.MethodGet, "/admin/dashboard/users", "", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Unauthorized role", envelope(t, rec).Message)
}

func TestBackendUnauthorizedEndsSession(t *testing.T) {
	app := newApp(t, withLogin(map[string]http.HandlerFunc{
		"GET /api/v1/bookings/mine": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
	}))
	cookie := passengerLogin(t, app)

	rec := serve(app, http.MethodGet, "/passenger/bookings", "", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/passenger/login", rec.Header().Get("Location"))
	cleared := cookieNamed(rec, utils.SessionCookie)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	// The old cookie no longer opens the portal.
	rec = serve(app, http.MethodGet, "/passenger/dashboard", "", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/passenger/login", rec.Header().Get("Location"))
}

func TestLoginOnWrongPortalIsRejected(t *testing.T) {
	app := newApp(t, withLogin(map[string]http.HandlerFunc{}))

	rec := serve(app, http.MethodPost, "/driver/login", `{"email":"asha@smartride.io","password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unauthorized role", envelope(t, rec).Message)
	cleared := cookieNamed(rec, utils.SessionCookie)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}

func TestLogoutRequiresSession(t *testing.T) {
	app := newApp(t, withLogin(map[string]http.HandlerFunc{}))

	rec := serve(app, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := passengerLogin(t, app)
	rec = serve(app, http.MethodPost, "/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", envelope(t, rec).Message)

	rec = serve(app, http.MethodPost, "/logout", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatIssuesHistoryCookie(t *testing.T) {
	app := newApp(t, map[string]http.HandlerFunc{})

	rec := serve(app, http.MethodGet, "/chat", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, cookieNamed(rec, utils.ChatCookie))
}

func TestHealthAndMetrics(t *testing.T) {
	app := newApp(t, map[string]http.HandlerFunc{})

	rec := serve(app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = serve(app, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "smartride_portal_http_requests_total")
}
