package session

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-pkgz/auth/token"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/domain"
)

const (
	testAdminEmail    = "admin@vighnaharta.example"
	testAdminPassword = "s3cret-pass"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	cfg := config.AuthConfig{
		JWTSecret: "test-secret",
		BaseURL:   "http://localhost:8080",
		Admin: config.AdminConfig{
			Email:        testAdminEmail,
			PasswordHash: string(hash),
		},
	}
	return New(cfg, "/api/auth", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func issueToken(t *testing.T, s *AuthService, user token.User, expiresIn time.Duration) string {
	t.Helper()
	claims := token.Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        "test-session",
			Issuer:    issuer,
			ExpiresAt: time.Now().Add(expiresIn).Unix(),
			NotBefore: time.Now().Add(-time.Minute).Unix(),
		},
		User: &user,
	}
	tkn, err := s.Token(claims)
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	return tkn
}

func requestWithCookie(tkn string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: jwtCookie, Value: tkn})
	return req
}

func TestResolveSession_NoToken(t *testing.T) {
	s := newTestService(t)

	sess, err := s.ResolveSession(httptest.NewRequest(http.MethodGet, "/api/auth/check", nil))
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}
}

func TestResolveSession_ValidCookie(t *testing.T) {
	s := newTestService(t)
	tkn := issueToken(t, s, token.User{
		ID:      "google_abc123",
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Picture: "https://example.com/ravi.png",
	}, time.Hour)

	sess, err := s.ResolveSession(requestWithCookie(tkn))
	if err != nil {
		t.Fatalf("ResolveSession() error: %v", err)
	}

	want := domain.UserFields{
		ID:      "google_abc123",
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Picture: "https://example.com/ravi.png",
		Role:    domain.RoleUser,
	}
	if sess.User != want {
		t.Errorf("user = %+v, want %+v", sess.User, want)
	}
}

func TestResolveSession_HeaderToken(t *testing.T) {
	s := newTestService(t)
	tkn := issueToken(t, s, token.User{ID: "github_1", Name: "dev"}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.Header.Set(jwtHeader, tkn)

	sess, err := s.ResolveSession(req)
	if err != nil {
		t.Fatalf("ResolveSession() error: %v", err)
	}
	if sess.User.ID != "github_1" {
		t.Errorf("unexpected user id %q", sess.User.ID)
	}
}

func TestResolveSession_AdminRole(t *testing.T) {
	s := newTestService(t)
	tkn := issueToken(t, s, token.User{ID: "google_admin", Name: "Admin", Email: "Admin@Vighnaharta.Example"}, time.Hour)

	sess, err := s.ResolveSession(requestWithCookie(tkn))
	if err != nil {
		t.Fatalf("ResolveSession() error: %v", err)
	}
	if sess.User.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want ADMIN", sess.User.Role)
	}
}

func TestResolveSession_Rejects(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: issueToken(t, s, token.User{ID: "google_1", Name: "x"}, -time.Hour)},
		{name: "garbage", token: "not-a-jwt"},
		{name: "no user id", token: issueToken(t, s, token.User{Name: "anonymous"}, time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := s.ResolveSession(requestWithCookie(tt.token))
			if err == nil {
				t.Fatalf("expected an error, got session %+v", sess)
			}
			if sess != nil {
				t.Errorf("expected nil session, got %+v", sess)
			}
		})
	}
}

func TestResolveSession_WrongSecret(t *testing.T) {
	other := New(config.AuthConfig{JWTSecret: "another-secret", BaseURL: "http://localhost:8080"}, "/api/auth", nil)
	tkn := issueToken(t, other, token.User{ID: "google_1", Name: "x"}, time.Hour)

	s := newTestService(t)
	sess, err := s.ResolveSession(requestWithCookie(tkn))
	if err == nil || sess != nil {
		t.Fatalf("expected token signed with another secret to be rejected, got %+v, %v", sess, err)
	}
	if errors.Is(err, ErrNoSession) {
		t.Errorf("expected a lookup error rather than ErrNoSession")
	}
}

func TestStampRole_LocalLoginCarriesAdminEmail(t *testing.T) {
	s := newTestService(t)

	claims := s.stampRole(token.Claims{User: &token.User{ID: "local_9f86d0", Name: testAdminEmail}})

	if claims.User.Email != testAdminEmail {
		t.Errorf("email = %q, want %q", claims.User.Email, testAdminEmail)
	}
	if got := claims.User.StrAttr(roleAttr); got != "ADMIN" {
		t.Errorf("role attr = %q, want ADMIN", got)
	}

	// claims without a user pass through unchanged
	if out := s.stampRole(token.Claims{}); out.User != nil {
		t.Errorf("expected nil user to stay nil")
	}
}

func TestCheckCredentials(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name     string
		user     string
		password string
		want     bool
	}{
		{name: "valid", user: testAdminEmail, password: testAdminPassword, want: true},
		{name: "case insensitive email", user: " ADMIN@vighnaharta.example", password: testAdminPassword, want: true},
		{name: "wrong password", user: testAdminEmail, password: "nope", want: false},
		{name: "unknown user", user: "someone@example.com", password: testAdminPassword, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := s.checkCredentials(tt.user, tt.password)
			if err != nil {
				t.Fatalf("checkCredentials() error: %v", err)
			}
			if ok != tt.want {
				t.Errorf("checkCredentials() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestCheckCredentials_BadHash(t *testing.T) {
	s := New(config.AuthConfig{
		JWTSecret: "test-secret",
		Admin:     config.AdminConfig{Email: testAdminEmail, PasswordHash: "not-a-bcrypt-hash"},
	}, "/api/auth", nil)

	ok, err := s.checkCredentials(testAdminEmail, testAdminPassword)
	if ok || err == nil {
		t.Errorf("expected failure with a malformed hash, got ok=%v err=%v", ok, err)
	}
}

func TestMiddleware(t *testing.T) {
	s := newTestService(t)

	var got *domain.Session
	var found bool
	handler := s.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous request passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if found {
			t.Errorf("expected no session, got %+v", got)
		}
	})

	t.Run("session attached", func(t *testing.T) {
		tkn := issueToken(t, s, token.User{ID: "google_42", Name: "Asha"}, time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(&http.Cookie{Name: jwtCookie, Value: tkn})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if !found {
			t.Fatal("expected a session in the request context")
		}
		if got.User.ID != "google_42" || got.User.Role != domain.RoleUser {
			t.Errorf("unexpected session %+v", got.User)
		}
	})
}

func TestHandlerListsProviders(t *testing.T) {
	s := newTestService(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body == "" || !strings.Contains(body, LocalProvider) {
		t.Errorf("expected provider list to include %q, got %q", LocalProvider, body)
	}
}
