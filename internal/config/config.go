package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	BaseURL    string
	// LoginURL is where the front end's login view lives; sign-in failures
	// are redirected there with an error query parameter.
	LoginURL string

	Google struct {
		ClientID     string
		ClientSecret string
	}

	Session struct {
		Secret string
	}

	// AllowedEmails is the static sign-in allow-list, already lower-cased.
	// An empty list means nobody can sign in.
	AllowedEmails []string

	// FoldersFile optionally replaces the built-in folder registry.
	FoldersFile string
	ToolsDir    string

	Logging struct {
		Level  string
		Format string
	}

	MetricsEnabled bool
	TrustedProxies []string
}

func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := &Config{}

	cfg.ListenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.BaseURL = getenvDefault("BASE_URL", "http://localhost:8080")
	cfg.LoginURL = getenvDefault("LOGIN_URL", "/login")

	cfg.Google.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.Google.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.Session.Secret = os.Getenv("SESSION_SECRET")

	for _, email := range getenvList("ALLOWED_EMAILS") {
		cfg.AllowedEmails = append(cfg.AllowedEmails, strings.ToLower(email))
	}

	cfg.FoldersFile = os.Getenv("FOLDERS_FILE")
	cfg.ToolsDir = getenvDefault("TOOLS_DIR", "web/tools")

	cfg.Logging.Level = getenvDefault("LOG_LEVEL", "info")
	cfg.Logging.Format = getenvDefault("LOG_FORMAT", "json")

	cfg.MetricsEnabled = getenvBool("METRICS_ENABLED", false)
	cfg.TrustedProxies = getenvList("TRUSTED_PROXIES")

	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	if len(cfg.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long (got %d)", len(cfg.Session.Secret))
	}

	if len(cfg.AllowedEmails) == 0 {
		fmt.Println("WARNING: ALLOWED_EMAILS is empty. Nobody will be able to sign in.")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvList(key string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return nil
}
