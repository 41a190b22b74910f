package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/auth"
	"github.com/go-pkgz/auth/avatar"
	"github.com/go-pkgz/auth/provider"
	"github.com/go-pkgz/auth/token"
	"golang.org/x/crypto/bcrypt"

	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/domain"
)

const (
	// LocalProvider is the direct credentials provider for the site admin
	LocalProvider = "local"

	issuer         = "vighnaharta"
	roleAttr       = "role"
	tokenDuration  = 15 * time.Minute
	cookieDuration = 7 * 24 * time.Hour

	// go-pkgz/auth defaults
	jwtCookie = "JWT"
	jwtHeader = "X-JWT"
	jwtQuery  = "token"
)

// AuthService implements Service on top of go-pkgz/auth
type AuthService struct {
	auth   *auth.Service
	admin  config.AdminConfig
	logger *slog.Logger
}

// New configures go-pkgz/auth from cfg. mountPath is where Handler is mounted
// (e.g. /api/auth) and is used to build OAuth callback URLs.
func New(cfg config.AuthConfig, mountPath string, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &AuthService{admin: cfg.Admin, logger: logger}

	opts := auth.Opts{
		SecretReader: token.SecretFunc(func(_ string) (string, error) {
			return cfg.JWTSecret, nil
		}),
		TokenDuration:  tokenDuration,
		CookieDuration: cookieDuration,
		Issuer:         issuer,
		URL:            cfg.BaseURL + mountPath,
		AvatarStore:    avatar.NewNoOp(),
		SecureCookies:  cfg.SecureCookie,
		DisableXSRF:    true, // API is consumed with fetch and the JWT cookie
		ClaimsUpd:      token.ClaimsUpdFunc(s.stampRole),
		Validator: token.ValidatorFunc(func(_ string, claims token.Claims) bool {
			if claims.User == nil || claims.User.ID == "" {
				logger.Warn("JWT validation failed: no user in claims")
				return false
			}
			return true
		}),
		Logger: logAdapter{logger: logger},
	}

	s.auth = auth.NewService(opts)

	if cfg.Google.Enabled() {
		s.auth.AddProvider("google", cfg.Google.ClientID, cfg.Google.ClientSecret)
		logger.Info("auth provider enabled", "provider", "google")
	}
	if cfg.GitHub.Enabled() {
		s.auth.AddProvider("github", cfg.GitHub.ClientID, cfg.GitHub.ClientSecret)
		logger.Info("auth provider enabled", "provider", "github")
	}
	if cfg.Admin.Enabled() {
		s.auth.AddDirectProvider(LocalProvider, provider.CredCheckerFunc(s.checkCredentials))
		logger.Info("auth provider enabled", "provider", LocalProvider)
	}

	return s
}

// ResolveSession reads the JWT from the X-JWT header, the JWT cookie or the
// token query parameter. Expired tokens do not count as a session here; the
// middleware is the only place that refreshes them.
func (s *AuthService) ResolveSession(r *http.Request) (*domain.Session, error) {
	if !hasToken(r) {
		return nil, ErrNoSession
	}

	claims, _, err := s.auth.TokenService().Get(r)
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}

	if claims.User == nil || claims.User.ID == "" {
		return nil, ErrNoSession
	}
	if s.auth.TokenService().IsExpired(claims) {
		return nil, ErrNoSession
	}

	return &domain.Session{User: userFields(*claims.User)}, nil
}

// Handler returns the go-pkgz/auth handler for /login, /callback, /logout,
// /user and /list
func (s *AuthService) Handler() http.Handler {
	authHandler, _ := s.auth.Handlers()
	return authHandler
}

// Middleware wraps the go-pkgz/auth Trace middleware, which refreshes
// expired cookies, and exposes the user through FromContext
func (s *AuthService) Middleware() func(http.Handler) http.Handler {
	authMiddleware := s.auth.Middleware()
	return func(next http.Handler) http.Handler {
		return authMiddleware.Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, err := token.GetUserInfo(r); err == nil && u.ID != "" {
				r = r.WithContext(WithSession(r.Context(), &domain.Session{User: userFields(u)}))
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// Token issues a signed JWT for claims. Used by tooling and tests.
func (s *AuthService) Token(claims token.Claims) (string, error) {
	return s.auth.TokenService().Token(claims)
}

// stampRole sets the role attribute before a token is signed. Local logins
// only succeed for the admin, so they carry the admin email.
func (s *AuthService) stampRole(claims token.Claims) token.Claims {
	if claims.User == nil {
		return claims
	}

	u := claims.User
	if strings.HasPrefix(u.ID, LocalProvider+"_") && u.Email == "" {
		u.Email = strings.ToLower(u.Name)
	}

	role := domain.RoleUser
	if s.admin.Email != "" && strings.EqualFold(u.Email, s.admin.Email) {
		role = domain.RoleAdmin
	}
	u.SetStrAttr(roleAttr, role.String())
	return claims
}

func (s *AuthService) checkCredentials(user, password string) (bool, error) {
	if !s.admin.Enabled() {
		return false, nil
	}
	if !strings.EqualFold(strings.TrimSpace(user), s.admin.Email) {
		s.logger.Warn("local login rejected", "reason", "unknown user")
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		s.logger.Warn("local login rejected", "reason", "password mismatch")
		return false, nil
	}
	return false, fmt.Errorf("compare admin password hash: %w", err)
}

func hasToken(r *http.Request) bool {
	if r.Header.Get(jwtHeader) != "" || r.URL.Query().Get(jwtQuery) != "" {
		return true
	}
	c, err := r.Cookie(jwtCookie)
	return err == nil && c.Value != ""
}

func userFields(u token.User) domain.UserFields {
	return domain.UserFields{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
		Role:    domain.ParseRole(u.StrAttr(roleAttr)),
	}
}

// logAdapter routes go-pkgz/auth's printf logging into slog at debug level
type logAdapter struct {
	logger *slog.Logger
}

func (l logAdapter) Logf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "go-pkgz/auth")
}
