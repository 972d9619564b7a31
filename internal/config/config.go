package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env     string // dev / staging / prod
	Version string

	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Auth / Security
	JWTSecret           string
	JWTIssuer           string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	RotateRefreshTokens bool

	// Infrastructure
	DatabaseURL string
	RedisURL    string

	// Listing cache
	CacheTTLList time.Duration

	// Rate limits, requests per minute per client
	RateLimitRegister int
	RateLimitLogin    int
	RateLimitRefresh  int
	RateLimitLogout   int
	RateLimitEvents   int

	// Dev conveniences
	SeedDemoData bool
}

// Load reads configuration from the environment, after loading an optional
// .env file the way local development runs do.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		Version:  getEnv("APP_VERSION", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	// Redis is optional: without it the blacklist falls back to the
	// in-memory store and listing responses go uncached.
	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.JWTIssuer = getEnv("JWT_ISSUER", "culturalite")

	var err error
	if cfg.AccessTokenTTL, err = getDuration("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RotateRefreshTokens, err = getBool("ROTATE_REFRESH_TOKENS", true); err != nil {
		return nil, err
	}

	if cfg.CacheTTLList, err = getDuration("CACHE_TTL_LIST", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.HTTPReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPWriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPIdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", time.Minute); err != nil {
		return nil, err
	}

	if cfg.RateLimitRegister, err = getInt("RATE_LIMIT_REGISTER", 3); err != nil {
		return nil, err
	}
	if cfg.RateLimitLogin, err = getInt("RATE_LIMIT_LOGIN", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitRefresh, err = getInt("RATE_LIMIT_REFRESH", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitLogout, err = getInt("RATE_LIMIT_LOGOUT", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitEvents, err = getInt("RATE_LIMIT_EVENTS", 60); err != nil {
		return nil, err
	}

	if cfg.SeedDemoData, err = getBool("SEED_DEMO_DATA", cfg.Env == "dev"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SecureCookies reports whether refresh cookies should carry the Secure
// flag. Local dev runs over plain HTTP.
func (c *Config) SecureCookies() bool {
	return c.Env != "dev"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %q: %w", key, v, err)
	}
	return b, nil
}
