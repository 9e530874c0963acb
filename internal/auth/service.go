// Package auth implements the sign-in gate: the Google OAuth flow, the
// email allow-list, and the signed session cookie.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/vpapadim/anagnostirio/internal/config"
)

const (
	googleIssuer    = "https://accounts.google.com"
	stateCookieName = "anagnostirio_oauth_state"
	stateTTL        = 10 * time.Minute
)

// Service runs the OAuth2 authorization-code flow against Google and decides
// who may sign in. Authorization is nothing more than allow-list membership,
// checked once at sign-in; there are no roles and no per-resource rules.
type Service struct {
	cfg      *config.Config
	oauth    *oauth2.Config
	allow    AllowList
	sessions *SessionManager
	logger   zerolog.Logger

	// issuer and userinfoEndpoint default to Google; tests point them at a
	// local stub.
	issuer           string
	userinfoEndpoint string

	// OIDC discovery is deferred to the first callback so that constructing
	// the service needs no network. Only a working verifier is cached; a
	// failed discovery is retried on the next callback.
	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

func NewService(cfg *config.Config, sessions *SessionManager, logger zerolog.Logger) *Service {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.BaseURL + "/auth/callback",
		Scopes: []string{
			oidc.ScopeOpenID,
			"email",
			"profile",
			drive.DriveReadonlyScope,
		},
		Endpoint: google.Endpoint,
	}

	return &Service{
		cfg:      cfg,
		oauth:    oauthConfig,
		allow:    NewAllowList(cfg.AllowedEmails),
		sessions: sessions,
		logger:   logger,
		issuer:   googleIssuer,
	}
}

// BeginOAuth redirects the user to Google's consent page. Offline access and
// a forced consent prompt guarantee a refresh token in the response.
func (s *Service) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate oauth state")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		Expires:  time.Now().Add(stateTTL),
		HttpOnly: true,
		Secure:   s.sessions.secure,
		SameSite: http.SameSiteLaxMode,
	})

	url := s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	http.Redirect(w, r, url, http.StatusFound)
}

// HandleOAuthCallback completes the flow: code exchange, identity check
// against the allow-list, session cookie. Any failure before the allow-list
// check routes back to the login view with a generic error flag; a
// disallowed email gets its own flag so the UI can say "not for you".
func (s *Service) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		s.logger.Warn().Str("error", errParam).Msg("oauth provider returned an error")
		s.redirectLoginError(w, r, "OAuthCallback")
		return
	}

	state := q.Get("state")
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || state == "" || stateCookie.Value != state {
		s.logger.Warn().Msg("oauth state mismatch")
		s.redirectLoginError(w, r, "OAuthCallback")
		return
	}
	s.clearStateCookie(w)

	code := q.Get("code")
	if code == "" {
		s.redirectLoginError(w, r, "OAuthCallback")
		return
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Msg("oauth code exchange failed")
		s.redirectLoginError(w, r, "OAuthCallback")
		return
	}

	email, err := s.emailFromToken(ctx, token)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve identity from token")
		s.redirectLoginError(w, r, "OAuthCallback")
		return
	}

	if !s.allow.Contains(email) {
		s.logger.Warn().Str("email", email).Msg("sign-in refused: email not on allow-list")
		s.redirectLoginError(w, r, "AccessDenied")
		return
	}

	sess := &Session{
		Email:        email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    time.Now().Add(sessionTTL),
	}
	if err := s.sessions.Issue(w, sess); err != nil {
		s.logger.Error().Err(err).Msg("failed to issue session")
		s.redirectLoginError(w, r, "OAuthCallback")
		return
	}

	s.logger.Info().Str("email", email).Msg("user signed in")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session cookie.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, s.cfg.LoginURL, http.StatusFound)
}

// emailFromToken prefers the ID token's verified email claim and falls back
// to the userinfo endpoint when the exchange carried no ID token.
func (s *Service) emailFromToken(ctx context.Context, token *oauth2.Token) (string, error) {
	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		verifier, err := s.idTokenVerifier(ctx)
		if err != nil {
			return "", err
		}
		idToken, err := verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return "", fmt.Errorf("failed to verify id token: %w", err)
		}
		var claims struct {
			Email string `json:"email"`
		}
		if err := idToken.Claims(&claims); err != nil {
			return "", fmt.Errorf("failed to parse id token claims: %w", err)
		}
		if claims.Email != "" {
			return claims.Email, nil
		}
	}

	opts := []option.ClientOption{option.WithTokenSource(s.oauth.TokenSource(ctx, token))}
	if s.userinfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.userinfoEndpoint))
	}
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo service: %w", err)
	}
	userinfo, err := svc.Userinfo.Get().Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	if userinfo.Email == "" {
		return "", fmt.Errorf("provider returned no email")
	}
	return userinfo.Email, nil
}

func (s *Service) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verifier != nil {
		return s.verifier, nil
	}
	provider, err := oidc.NewProvider(ctx, s.issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery failed: %w", err)
	}
	s.verifier = provider.Verifier(&oidc.Config{ClientID: s.cfg.Google.ClientID})
	return s.verifier, nil
}

func (s *Service) redirectLoginError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, s.cfg.LoginURL+"?error="+code, http.StatusFound)
}

func (s *Service) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.sessions.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
