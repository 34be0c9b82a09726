package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/data/repository"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/listview"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== REPOSITORY FAKES ====================

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
	revoked  []uuid.UUID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	r.revoked = append(r.revoked, token)
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type fakeChatRepo struct {
	mu   sync.Mutex
	msgs map[uuid.UUID][]entity.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{msgs: map[uuid.UUID][]entity.ChatMessage{}}
}

func (r *fakeChatRepo) Append(_ context.Context, msgs ...*entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.msgs[m.HistoryKey] = append(r.msgs[m.HistoryKey], *m)
	}
	return nil
}

func (r *fakeChatRepo) History(_ context.Context, key uuid.UUID) ([]entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.ChatMessage{}, r.msgs[key]...), nil
}

func (r *fakeChatRepo) Clear(_ context.Context, key uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.msgs, key)
	return nil
}

// ==================== BACKEND ====================

// newBackend serves the given routes ("METHOD /path") under /api/v1 and
// at the backend root.
func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *gateway.Client {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gw, err := gateway.NewClient(utils.BackendConfig{BaseURL: srv.URL + "/api/v1"}, zap.NewNop())
	require.NoError(t, err)
	return gw
}

func writeJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func writeError(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

// ==================== TICKER ====================

// idleTicker never fires, so views only fetch on mount, refresh and actions.
type idleTicker struct{}

func (idleTicker) Chan() <-chan time.Time { return nil }
func (idleTicker) Reset(time.Duration)    {}
func (idleTicker) Stop()                  {}

func noPolling() listview.PollerOption {
	return listview.WithTicker(func(time.Duration) listview.Ticker { return idleTicker{} })
}

func sessionCtx(token string) context.Context {
	return utils.SetTokenContext(context.Background(), token)
}
