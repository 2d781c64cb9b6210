package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/akhelij/apidog-sync-mcp-server/reorganizer"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings for resolved catalog documents.
	CacheEnabled bool
	CacheSize    int
	CacheTTL     time.Duration

	// list_endpoints defaults.
	ListLimit       int
	ListDetailLimit int
	MaxLimit        int

	// Inline content limit for docInput.Content.
	MaxInlineSize int64

	// Planner default strategy.
	DefaultStrategy string

	// AllowPrivateIPs disables SSRF protection for URL inputs.
	AllowPrivateIPs bool

	// Remote catalog credentials for the live project tools.
	APIToken  string
	ProjectID string
	BaseURL   string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from APIDOG_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    envBool("APIDOG_SYNC_CACHE_ENABLED", true),
		CacheSize:       envInt("APIDOG_SYNC_CACHE_SIZE", 10),
		CacheTTL:        envDuration("APIDOG_SYNC_CACHE_TTL", 5*time.Minute),
		ListLimit:       envInt("APIDOG_SYNC_LIST_LIMIT", 100),
		ListDetailLimit: envInt("APIDOG_SYNC_LIST_DETAIL_LIMIT", 25),
		MaxLimit:        envInt("APIDOG_SYNC_MAX_LIMIT", 1000),
		MaxInlineSize:   int64(envInt("APIDOG_SYNC_MAX_INLINE_SIZE", 10<<20)),
		DefaultStrategy: envStrategy("APIDOG_SYNC_DEFAULT_STRATEGY"),
		AllowPrivateIPs: envBool("APIDOG_SYNC_ALLOW_PRIVATE_IPS", false),
		APIToken:        os.Getenv("APIDOG_API_TOKEN"),
		ProjectID:       os.Getenv("APIDOG_PROJECT_ID"),
		BaseURL:         os.Getenv("APIDOG_BASE_URL"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// validStrategies is the set of recognised reorganization strategy values.
// Must stay in sync with reorganizer.Strategy constants.
var validStrategies = map[string]bool{
	string(reorganizer.StrategyPathBased):        true,
	string(reorganizer.StrategyPreserveTopLevel): true,
	string(reorganizer.StrategyFlat):             true,
}

func envStrategy(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if !validStrategies[v] {
		slog.Warn("invalid strategy env var, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
