package httpx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
	domainsession "github.com/velora/shop-ui-gateway/internal/domain/session"
	"github.com/velora/shop-ui-gateway/internal/ports"
	"github.com/velora/shop-ui-gateway/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordedCall is one request the fake Backend saw, body already drained.
type recordedCall struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// callLog records every request reaching the fake Backend so tests can
// assert on call counts and forwarded shapes.
type callLog struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (l *callLog) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, recordedCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
}

func (l *callLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func (l *callLog) Last(t *testing.T) recordedCall {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.calls, "fake backend was never called")
	return l.calls[len(l.calls)-1]
}

// newTestBackend starts a fake Backend serving fn and returns a client
// pointed at it plus the call log.
func newTestBackend(t *testing.T, fn http.HandlerFunc) (*backend.Client, *callLog) {
	t.Helper()
	log := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.record(r)
		fn(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(backend.Config{
		BaseURL:        srv.URL,
		AnalyticsToken: "svc-token",
		Logger:         discardLogger(),
	})
	require.NoError(t, err)
	return client, log
}

// memSessionRepo is an in-memory ports.SessionRepository for handler tests;
// the redis-backed implementation has its own integration tests.
type memSessionRepo struct {
	mu      sync.Mutex
	recs    map[string]ports.SessionRecord
	cleared []string
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{recs: map[string]ports.SessionRecord{}}
}

func (m *memSessionRepo) Save(_ context.Context, rec ports.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.Token] = rec
	return nil
}

func (m *memSessionRepo) Load(_ context.Context, token string) (ports.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[token]
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (m *memSessionRepo) Clear(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, token)
	m.cleared = append(m.cleared, token)
	return nil
}

type memNotifier struct {
	mu     sync.Mutex
	tokens []string
}

func (m *memNotifier) NotifyLogout(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = append(m.tokens, token)
	return nil
}

func newTestSessions(repo *memSessionRepo, notifier *memNotifier) *service.SessionService {
	return service.NewSessionService(service.SessionServiceOptions{
		Repo:     repo,
		Notifier: notifier,
		Logger:   discardLogger(),
	})
}

func seedSession(t *testing.T, repo *memSessionRepo, token string) domainsession.UserProfile {
	t.Helper()
	user := domainsession.UserProfile{
		ID:    "7",
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  domainsession.RoleCustomer,
		Token: token,
	}
	require.NoError(t, repo.Save(context.Background(), ports.SessionRecord{Token: token, User: user}))
	return user
}
