package sessions

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/uigen-server/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	DefaultCookieName = "auth-token"
	DefaultTTL        = 7 * 24 * time.Hour
)

// sessionClaims is the signed form of a Payload. The registered exp claim
// always matches SessionExpiresAt so that verification enforces expiry.
type sessionClaims struct {
	UserID           string    `json:"userId"`
	Email            string    `json:"email"`
	SessionExpiresAt time.Time `json:"expiresAt"`
	jwt.RegisteredClaims
}

// Manager issues and verifies the signed session cookie.
type Manager struct {
	signer     token.Signer
	cookieName string
	ttl        time.Duration
	secure     bool
	nowFunc    func() time.Time
}

type ManagerOption func(*Manager)

func WithCookieName(name string) ManagerOption {
	return func(m *Manager) {
		m.cookieName = name
	}
}

func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithSecureCookies marks the session cookie Secure; set it in production.
func WithSecureCookies(secure bool) ManagerOption {
	return func(m *Manager) {
		m.secure = secure
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func NewManager(signer token.Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer:     signer,
		cookieName: DefaultCookieName,
		ttl:        DefaultTTL,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// CreateSession signs a new session for the user and stores it in the cookie
// store. Nothing is written when signing fails, and a failed cookie write is
// returned as-is; there is no partial success.
func (m *Manager) CreateSession(cookies CookieStore, userID, email string) error {
	now := m.nowFunc()
	expiresAt := now.Add(m.ttl)

	signed, err := m.signer.Sign(sessionClaims{
		UserID:           userID,
		Email:            email,
		SessionExpiresAt: expiresAt,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		return err
	}

	return cookies.Set(m.cookieName, signed, CookieOptions{
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Secure:   m.secure,
		Expires:  expiresAt,
	})
}

// GetSession returns the verified session payload, or nil when there is no
// valid session. Only a failure to read the cookie store is returned as an
// error; missing, malformed, tampered and expired tokens all yield nil.
func (m *Manager) GetSession(cookies CookieStore) (*Payload, error) {
	cookie, err := cookies.Get(m.cookieName)
	if err != nil {
		return nil, err
	}
	if cookie == nil || strings.TrimSpace(cookie.Value) == "" {
		return nil, nil
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(cookie.Value, claims, m.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{m.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFunc),
	)
	if err != nil || !parsed.Valid {
		log.Debug().Err(err).Msg("session token rejected")
		return nil, nil
	}

	return &Payload{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.SessionExpiresAt,
	}, nil
}

// DeleteSession removes the session cookie.
func (m *Manager) DeleteSession(cookies CookieStore) error {
	if err := cookies.Delete(m.cookieName); err != nil {
		return errors.Wrap(err, "[Manager.DeleteSession] cookies.Delete")
	}
	return nil
}
