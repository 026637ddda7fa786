package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend selection.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store string // "redis" | "memory"

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold  int           // warn after this many attempts

	// Metadata fetcher
	FetchTimeout      time.Duration // whole-request budget including redirects
	FetchMaxRedirects int           // redirect hop limit
	FetchUserAgent    string        // empty = built-in browser UA

	// Background loops
	RefreshInterval    time.Duration // snapshot refresh period
	TrashTTL           time.Duration // how long trashed bookmarks survive
	TrashSweepInterval time.Duration // 0 = trash collection disabled

	// Startup import (optional)
	ImportFile string // path to a YAML bookmark export, empty = disabled
	ImportUser string // user the import is filed under

	// HTTP access
	AllowedHosts []string // optional, restrict access to specific Host headers
	CORSOrigins  []string // origins allowed on the metadata endpoint
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	MetadataRPM  int      // per-IP request budget per minute on /metadata
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MARQUE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MARQUE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MARQUE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MARQUE_PRETTY_LOG", false),

		// Store backend
		Store: getenv("MARQUE_STORE", StoreRedis),

		// Redis settings
		RedisAddr:           getenv("MARQUE_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("MARQUE_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("MARQUE_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MARQUE_REDIS_DB", 0),
		RedisDT:             mustDuration("MARQUE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("MARQUE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("MARQUE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("MARQUE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("MARQUE_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("MARQUE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("MARQUE_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("MARQUE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("MARQUE_REDIS_WARN_THRESHOLD", 3),

		// Metadata fetcher
		FetchTimeout:      mustDuration("MARQUE_FETCH_TIMEOUT", 10*time.Second),
		FetchMaxRedirects: getenvInt("MARQUE_FETCH_MAX_REDIRECTS", 5),
		FetchUserAgent:    getenv("MARQUE_FETCH_USER_AGENT", ""),

		// Background loops
		RefreshInterval:    mustDuration("MARQUE_REFRESH_INTERVAL", 5*time.Minute),
		TrashTTL:           mustDuration("MARQUE_TRASH_TTL", 30*24*time.Hour),
		TrashSweepInterval: mustDuration("MARQUE_TRASH_SWEEP_INTERVAL", time.Hour),

		// Startup import
		ImportFile: getenv("MARQUE_IMPORT_FILE", ""),
		ImportUser: getenv("MARQUE_IMPORT_USER", ""),

		// HTTP access
		AllowedHosts: splitAndTrim(getenv("MARQUE_ALLOWED_HOSTS", "")),
		CORSOrigins:  splitAndTrim(getenv("MARQUE_CORS_ORIGINS", "*")),
		TrustProxy:   mustBool("MARQUE_TRUST_PROXY", true),
		MetadataRPM:  getenvInt("MARQUE_METADATA_RPM", 30),
	}

	if cfg.Store != StoreRedis && cfg.Store != StoreMemory {
		panic(fmt.Sprintf("FATAL: MARQUE_STORE must be %q or %q, got %q",
			StoreRedis, StoreMemory, cfg.Store))
	}
	if cfg.Store == StoreRedis && cfg.RedisAddr == "" {
		panic("FATAL: MARQUE_REDIS_ADDR is required when MARQUE_STORE=redis")
	}
	if cfg.ImportFile != "" && cfg.ImportUser == "" {
		panic("FATAL: MARQUE_IMPORT_USER is required when MARQUE_IMPORT_FILE is set")
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
