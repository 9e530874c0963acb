package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpapadim/anagnostirio/internal/config"
)

func testSessionManager(t *testing.T, baseURL string) *SessionManager {
	t.Helper()
	cfg := &config.Config{BaseURL: baseURL}
	cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
	return NewSessionManager(cfg)
}

func issueCookie(t *testing.T, m *SessionManager, sess *Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, sess))

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	m := testSessionManager(t, "http://localhost:8080")
	cookie := issueCookie(t, m, &Session{
		Email:        "alice@example.com",
		AccessToken:  "ya29.token",
		RefreshToken: "1//refresh",
	})

	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)

	sess, err := m.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", sess.Email)
	assert.Equal(t, "ya29.token", sess.AccessToken)
	assert.Equal(t, "1//refresh", sess.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), sess.ExpiresAt, time.Minute)
}

func TestSessionSecureFollowsBaseURL(t *testing.T) {
	m := testSessionManager(t, "https://anagnostirio.example.com")
	cookie := issueCookie(t, m, &Session{Email: "alice@example.com"})
	assert.True(t, cookie.Secure)
}

func TestSessionRejectsMissingCookie(t *testing.T) {
	m := testSessionManager(t, "http://localhost:8080")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Resolve(req)
	assert.Error(t, err)
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	m := testSessionManager(t, "http://localhost:8080")
	cookie := issueCookie(t, m, &Session{Email: "alice@example.com"})

	parts := strings.Split(cookie.Value, ".")
	require.Len(t, parts, 3)
	cookie.Value = parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	_, err := m.Resolve(req)
	assert.Error(t, err)
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	issuer := testSessionManager(t, "http://localhost:8080")
	cookie := issueCookie(t, issuer, &Session{Email: "alice@example.com"})

	other := &config.Config{BaseURL: "http://localhost:8080"}
	other.Session.Secret = "ffffffffffffffffffffffffffffffff"
	resolver := NewSessionManager(other)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	_, err := resolver.Resolve(req)
	assert.Error(t, err)
}

func TestSessionRejectsExpiredToken(t *testing.T) {
	m := testSessionManager(t, "http://localhost:8080")
	cookie := issueCookie(t, m, &Session{
		Email:     "alice@example.com",
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	_, err := m.Resolve(req)
	assert.Error(t, err)
}

func TestRequireSessionMiddleware(t *testing.T) {
	m := testSessionManager(t, "http://localhost:8080")

	var got *Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := m.RequireSession(next)

	// Without a cookie the middleware rejects the request.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)

	cookie := issueCookie(t, m, &Session{Email: "alice@example.com", AccessToken: "tok"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "tok", got.AccessToken)
}
