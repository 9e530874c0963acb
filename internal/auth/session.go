package auth

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vpapadim/anagnostirio/internal/config"
	httperrors "github.com/vpapadim/anagnostirio/internal/http/errors"
)

const (
	sessionCookieName = "anagnostirio_session"
	sessionTTL        = 24 * time.Hour
)

// Session is the authenticated state carried by the session cookie. The
// Google tokens are treated as opaque capabilities: the access token is
// handed to the Drive adapter, never inspected.
type Session struct {
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type sessionClaims struct {
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager issues and resolves signed session cookies. Sessions are
// stateless: everything lives in the HS256-signed JWT, nothing server-side.
type SessionManager struct {
	secret []byte
	secure bool
}

func NewSessionManager(cfg *config.Config) *SessionManager {
	secure := true
	if base, err := url.Parse(cfg.BaseURL); err == nil && base.Scheme != "https" {
		secure = false
	}

	return &SessionManager{
		secret: []byte(cfg.Session.Secret),
		secure: secure,
	}
}

// Issue signs a session cookie for the given session.
func (m *SessionManager) Issue(w http.ResponseWriter, sess *Session) error {
	now := time.Now()
	expiresAt := sess.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(sessionTTL)
	}

	claims := sessionClaims{
		Email:        sess.Email,
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Resolve extracts and validates the session from the request cookie.
func (m *SessionManager) Resolve(r *http.Request) (*Session, error) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("no session cookie")
	}

	token, err := jwt.ParseWithClaims(c.Value, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	sess := &Session{
		Email:        claims.Email,
		AccessToken:  claims.AccessToken,
		RefreshToken: claims.RefreshToken,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// RequireSession rejects requests without a valid session and puts the
// session on the request context for downstream handlers.
func (m *SessionManager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Resolve(r)
		if err != nil {
			httperrors.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
