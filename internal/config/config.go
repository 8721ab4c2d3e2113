package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// State backends accepted by STATE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	AppEnv   string
	LogLevel string
	LogFile  string

	APIURL         string
	RequestTimeout time.Duration

	StateBackend   string
	StatePath      string
	StateNamespace string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DatabaseURL    string

	OTelEnabled       bool
	OTelCollectorAddr string

	Port          string
	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration
	CORSOrigins   []string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. Call godotenv first if a
// .env file should take part.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		AppEnv:            fallback(v.GetString("APP_ENV"), "dev"),
		LogLevel:          fallback(v.GetString("LOG_LEVEL"), "info"),
		LogFile:           strings.TrimSpace(v.GetString("LOG_FILE")),
		APIURL:            strings.TrimRight(fallback(v.GetString("API_URL"), "http://localhost:4000"), "/"),
		RequestTimeout:    v.GetDuration("REQUEST_TIMEOUT"),
		StateBackend:      strings.ToLower(fallback(v.GetString("STATE_BACKEND"), BackendFile)),
		StatePath:         fallback(v.GetString("STATE_PATH"), defaultStatePath()),
		StateNamespace:    fallback(v.GetString("STATE_NAMESPACE"), "storefront"),
		RedisAddr:         fallback(v.GetString("REDIS_ADDR"), "localhost:6379"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		DatabaseURL:       strings.TrimSpace(v.GetString("DATABASE_URL")),
		OTelEnabled:       v.GetBool("OTEL_ENABLED"),
		OTelCollectorAddr: fallback(v.GetString("OTEL_COLLECTOR_ADDR"), "localhost:4317"),
		Port:              fallback(v.GetString("PORT"), "4000"),
		JWTSecret:         strings.TrimSpace(v.GetString("JWT_SECRET")),
		JWTIssuer:         fallback(v.GetString("JWT_ISSUER"), "storefront-devapi"),
		CORSOrigins:       parseCSV(fallback(v.GetString("CORS_ALLOWED_ORIGINS"), "*")),
		AdminEmail:        fallback(v.GetString("DEVAPI_ADMIN_EMAIL"), "admin@example.com"),
		AdminPassword:     fallback(v.GetString("DEVAPI_ADMIN_PASSWORD"), "admin12345"),
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if ttlMinutes := v.GetInt("JWT_TTL_MINUTES"); ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}
	if cfg.RedisDB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must not be negative, got %d", cfg.RedisDB)
	}

	return cfg, nil
}

// ValidateClient checks the settings the terminal client depends on.
func (c Config) ValidateClient() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL %q is not an absolute URL", c.APIURL)
	}
	switch c.StateBackend {
	case BackendFile, BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STATE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q", c.StateBackend)
	}
	return nil
}

// ValidateDevAPI checks the settings the development backend depends on.
func (c Config) ValidateDevAPI() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_URL", "http://localhost:4000")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("STATE_BACKEND", BackendFile)
	v.SetDefault("STATE_NAMESPACE", "storefront")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("PORT", "4000")
	v.SetDefault("JWT_ISSUER", "storefront-devapi")
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".storefront", "state.json")
	}
	return filepath.Join(home, ".storefront", "state.json")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
