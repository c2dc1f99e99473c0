package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	AppName    = "Repurpose"
	AppVersion = "1.0.0"
	AppRepo    = "https://github.com/repurpose/repurpose"
)

// UserAgent identifies outbound article fetches.
var UserAgent = "Mozilla/5.0 (compatible; " + AppName + "/" + AppVersion + "; +" + AppRepo + ")"

// Chrome headers for TLS fingerprinting (must match azuretls Chrome profile version)
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="135", "Chromium";v="135", "Not-A.Brand";v="8"`
)

// HTMLAccept is sent with article fetches.
const HTMLAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Fetch modes
const (
	FetchModeStandard = "standard"
	FetchModeBrowser  = "browser"
)

type Config struct {
	Addr      string
	StaticDir string
	LogLevel  string
	LogFormat string
	NodeID    int64

	AI    AIConfig
	Fetch FetchConfig
	Store StoreConfig
}

// AIConfig configures the language model provider.
type AIConfig struct {
	Provider  string
	APIKey    string
	BaseURL   string
	Model     string
	RateLimit int
	Timeout   time.Duration
}

// FetchConfig configures article fetching.
type FetchConfig struct {
	Mode     string
	Timeout  time.Duration
	MaxBytes int64
	ProxyURL string
}

// StoreConfig configures optional persistence. An empty URL disables it.
type StoreConfig struct {
	URL   string
	Token string
}

// Enabled reports whether a store is configured.
func (s StoreConfig) Enabled() bool {
	return strings.TrimSpace(s.URL) != ""
}

func Load() Config {
	addr := os.Getenv("REPURPOSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	staticDir := os.Getenv("REPURPOSE_STATIC_DIR")
	if staticDir == "" {
		staticDir = detectStaticDir()
	}

	provider := strings.ToLower(os.Getenv("REPURPOSE_AI_PROVIDER"))
	if provider == "" {
		provider = "openai"
	}

	fetchMode := strings.ToLower(os.Getenv("REPURPOSE_FETCH_MODE"))
	if fetchMode != FetchModeBrowser {
		fetchMode = FetchModeStandard
	}

	return Config{
		Addr:      addr,
		StaticDir: filepath.Clean(staticDir),
		LogLevel:  envOr("REPURPOSE_LOG_LEVEL", "info"),
		LogFormat: envOr("REPURPOSE_LOG_FORMAT", "text"),
		NodeID:    envInt64("REPURPOSE_NODE_ID", 1),
		AI: AIConfig{
			Provider:  provider,
			APIKey:    apiKey(provider),
			BaseURL:   os.Getenv("REPURPOSE_AI_BASE_URL"),
			Model:     os.Getenv("REPURPOSE_AI_MODEL"),
			RateLimit: int(envInt64("REPURPOSE_AI_RATE_LIMIT", 10)),
			Timeout:   envDuration("REPURPOSE_AI_TIMEOUT", 90*time.Second),
		},
		Fetch: FetchConfig{
			Mode:     fetchMode,
			Timeout:  envDuration("REPURPOSE_FETCH_TIMEOUT", 20*time.Second),
			MaxBytes: envInt64("REPURPOSE_FETCH_MAX_BYTES", 10<<20),
			ProxyURL: os.Getenv("REPURPOSE_PROXY_URL"),
		},
		Store: StoreConfig{
			URL:   os.Getenv("REPURPOSE_STORE_URL"),
			Token: os.Getenv("REPURPOSE_STORE_TOKEN"),
		},
	}
}

// apiKey falls back to the vendor variable for the selected provider.
func apiKey(provider string) string {
	if key := os.Getenv("REPURPOSE_AI_API_KEY"); key != "" {
		return key
	}
	if provider == "anthropic" {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

// envDuration accepts Go duration strings ("30s") or plain seconds ("30").
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func detectStaticDir() string {
	candidates := []string{
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./frontend/dist"
}
