package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Astro    AstroConfig    `yaml:"astro"`
	Dream    DreamConfig    `yaml:"dream"`
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	Breaker  BreakerConfig  `yaml:"breaker"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// AstroConfig tunes the astrology engine.
type AstroConfig struct {
	HouseSystem         string        `yaml:"houseSystem"`
	TopTransits         int           `yaml:"topTransits"`
	Orb                 float64       `yaml:"orb"`
	ScoringFile         string        `yaml:"scoringFile"`
	PositionCacheTTL    time.Duration `yaml:"positionCacheTtl"`
	ValidateCoordinates bool          `yaml:"validateCoordinates"`
	BirthTimezone       string        `yaml:"birthTimezone"`
	// SerializeEphemeris routes queries through the single-lock adapter
	// used for providers that keep observer state globally.
	SerializeEphemeris bool `yaml:"serializeEphemeris"`
}

// DreamConfig bounds dream creation and listing.
type DreamConfig struct {
	DefaultListLimit int `yaml:"defaultListLimit"`
	MaxListLimit     int `yaml:"maxListLimit"`
	MaxNarrative     int `yaml:"maxNarrative"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the position cache.
type ValkeyConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	KeyPrefix string `yaml:"keyPrefix"`
}

// BreakerConfig guards the remote position cache.
type BreakerConfig struct {
	MaxRequests      uint32        `yaml:"maxRequests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failureThreshold"`
	MinRequests      uint32        `yaml:"minRequests"`
}

var houseSystems = map[string]bool{
	"placidus":   true,
	"porphyry":   true,
	"equal":      true,
	"whole_sign": true,
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ASTRO_HOUSE_SYSTEM"); v != "" {
		cfg.Astro.HouseSystem = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("ASTRO_TOP_TRANSITS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Astro.TopTransits = parsed
		}
	}
	if v := os.Getenv("ASTRO_ORB"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Astro.Orb = parsed
		}
	}
	if v := os.Getenv("ASTRO_SCORING_FILE"); v != "" {
		cfg.Astro.ScoringFile = v
	}
	if v := os.Getenv("ASTRO_POSITION_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Astro.PositionCacheTTL = parsed
		}
	}
	if v := os.Getenv("ASTRO_VALIDATE_COORDINATES"); v != "" {
		cfg.Astro.ValidateCoordinates = parseBool(v)
	}
	if v := os.Getenv("ASTRO_BIRTH_TIMEZONE"); v != "" {
		cfg.Astro.BirthTimezone = v
	}
	if v := os.Getenv("ASTRO_SERIALIZE_EPHEMERIS"); v != "" {
		cfg.Astro.SerializeEphemeris = parseBool(v)
	}
	if v := os.Getenv("DREAM_MAX_LIST_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dream.MaxListLimit = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Valkey.Addr = v
	}
	if v := os.Getenv("VALKEY_KEY_PREFIX"); v != "" {
		cfg.Valkey.KeyPrefix = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 100 * time.Millisecond,
			},
		},
		Astro: AstroConfig{
			HouseSystem:         "placidus",
			TopTransits:         3,
			Orb:                 8,
			PositionCacheTTL:    24 * time.Hour,
			ValidateCoordinates: true,
			BirthTimezone:       "UTC",
		},
		Dream: DreamConfig{
			DefaultListLimit: 20,
			MaxListLimit:     100,
			MaxNarrative:     20000,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Valkey: ValkeyConfig{
			KeyPrefix: "morpheus",
		},
		Breaker: BreakerConfig{
			MaxRequests:      3,
			Interval:         30 * time.Second,
			Timeout:          15 * time.Second,
			FailureThreshold: 0.5,
			MinRequests:      5,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if !houseSystems[c.Astro.HouseSystem] {
		return fmt.Errorf("astro.houseSystem %q is not supported", c.Astro.HouseSystem)
	}
	if c.Astro.TopTransits <= 0 {
		return errors.New("astro.topTransits must be positive")
	}
	if c.Astro.Orb <= 0 || c.Astro.Orb > 10 {
		return errors.New("astro.orb must be within (0, 10]")
	}
	if c.Astro.PositionCacheTTL < 0 {
		return errors.New("astro.positionCacheTtl cannot be negative")
	}
	if tz := strings.TrimSpace(c.Astro.BirthTimezone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("astro.birthTimezone: %w", err)
		}
	}
	if c.Dream.DefaultListLimit <= 0 || c.Dream.MaxListLimit < c.Dream.DefaultListLimit {
		return errors.New("dream list limits must satisfy 0 < defaultListLimit <= maxListLimit")
	}
	if c.Dream.MaxNarrative <= 0 {
		return errors.New("dream.maxNarrative must be positive")
	}
	if c.Postgres.MaxConns < 0 || c.Postgres.MinConns < 0 {
		return errors.New("postgres connection limits cannot be negative")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when the position cache is enabled")
	}
	if c.Breaker.FailureThreshold <= 0 || c.Breaker.FailureThreshold > 1 {
		return errors.New("breaker.failureThreshold must be within (0, 1]")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
