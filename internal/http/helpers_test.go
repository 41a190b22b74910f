package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/cors"
	"github.com/vighnaharta/internal/domain"
	"github.com/vighnaharta/internal/session"
	"github.com/vighnaharta/internal/system"
)

const testOrigin = "https://vighnaharta.example"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

// fakeSessions is a session.Service with a canned session and a recording delegate
type fakeSessions struct {
	mu        sync.Mutex
	session   *domain.Session
	err       error
	delegate  http.HandlerFunc
	delegated int
	seenPaths []string
}

func (f *fakeSessions) ResolveSession(r *http.Request) (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.session == nil {
		return nil, session.ErrNoSession
	}
	return f.session, nil
}

func (f *fakeSessions) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.delegated++
		f.seenPaths = append(f.seenPaths, r.URL.Path)
		f.mu.Unlock()
		if f.delegate != nil {
			f.delegate(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func (f *fakeSessions) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if f.session != nil {
				r = r.WithContext(session.WithSession(r.Context(), f.session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (f *fakeSessions) delegatedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delegated
}

// fakeCircles is a CircleService with canned results
type fakeCircles struct {
	circles []domain.Circle
	err     error
}

func (f *fakeCircles) ListActiveCircles(ctx context.Context) ([]domain.Circle, error) {
	return f.circles, f.err
}

func (f *fakeCircles) GetCircleByCode(ctx context.Context, code string) (*domain.Circle, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.circles {
		if f.circles[i].Code == code {
			return &f.circles[i], nil
		}
	}
	return nil, domain.WrapCircleNotFound(code, nil)
}

type fakeSystem struct {
	err error
}

func (f *fakeSystem) GetSystemStats(ctx context.Context) (*system.SystemStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &system.SystemStats{Hostname: "test-host", CPU: system.CPUStats{Cores: 4}}, nil
}

type fakeHealth struct {
	health domain.StoreHealth
}

func (f *fakeHealth) Snapshot() domain.StoreHealth { return f.health }

type testServer struct {
	server   *Server
	policy   *cors.Policy
	sessions *fakeSessions
	circles  *fakeCircles
	system   *fakeSystem
	health   *fakeHealth
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	checked := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	ts := &testServer{
		policy:   cors.NewPolicy(testOrigin),
		sessions: &fakeSessions{},
		circles:  &fakeCircles{},
		system:   &fakeSystem{},
		health:   &fakeHealth{health: domain.StoreHealth{Driver: "sqlite", Healthy: true, CheckedAt: &checked}},
	}
	ts.server = NewServer(&config.Config{Environment: "test"}, Dependencies{
		Policy:        ts.policy,
		Sessions:      ts.sessions,
		CircleService: ts.circles,
		SystemService: ts.system,
		Health:        ts.health,
	})
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func assertCORSHeaders(t *testing.T, policy *cors.Policy, h http.Header) {
	t.Helper()
	for k, v := range policy.Headers() {
		if got := h.Values(k); len(got) != 1 || got[0] != v {
			t.Errorf("header %s = %v, want [%s]", k, got, v)
		}
	}
}

var errLookup = errors.New("token service unavailable")
