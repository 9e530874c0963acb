// Package httpserver wires the HTTP routes.
package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/vpapadim/anagnostirio/internal/api"
	"github.com/vpapadim/anagnostirio/internal/auth"
	"github.com/vpapadim/anagnostirio/internal/config"
	"github.com/vpapadim/anagnostirio/internal/http/ratelimit"
	"github.com/vpapadim/anagnostirio/internal/metrics"
)

// NewRouter assembles the full HTTP surface: health and metrics, the OAuth
// sign-in routes, and the session-gated file API.
func NewRouter(cfg *config.Config, authService *auth.Service, sessions *auth.SessionManager, h *api.Handler) http.Handler {
	r := chi.NewRouter()

	// Auth endpoints: 5 requests per second, burst of 10
	authRateLimiter := ratelimit.NewIPRateLimiter(rate.Limit(5), 10, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	r.Route("/auth", func(r chi.Router) {
		r.Use(authRateLimiter.Middleware())
		r.Get("/login", authService.BeginOAuth)
		r.Get("/callback", authService.HandleOAuthCallback)
		r.Post("/logout", authService.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		// Tool discovery carries no Drive access and is deliberately open.
		r.Get("/tools", h.ListTools)

		r.Group(func(r chi.Router) {
			r.Use(sessions.RequireSession)
			r.Get("/auth/session", h.SessionInfo)
			r.Get("/folders", h.ListFolders)
			r.Get("/files/{folderId}", h.ListFiles)
			r.Get("/files/pdf/{fileId}", h.GetPDF)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
