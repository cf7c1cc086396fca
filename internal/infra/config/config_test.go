package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "placidus", cfg.Astro.HouseSystem)
	require.Equal(t, 3, cfg.Astro.TopTransits)
	require.Equal(t, 8.0, cfg.Astro.Orb)
	require.Equal(t, 24*time.Hour, cfg.Astro.PositionCacheTTL)
	require.True(t, cfg.Astro.ValidateCoordinates)
	require.Equal(t, "UTC", cfg.Astro.BirthTimezone)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
http:
  address: ":9000"
  allowedOrigins: ["https://morpheus.example"]
astro:
  houseSystem: porphyry
  topTransits: 5
  positionCacheTtl: 1h
dream:
  defaultListLimit: 10
  maxListLimit: 50
  maxNarrative: 5000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ASTRO_HOUSE_SYSTEM", "Whole_Sign")
	t.Setenv("ASTRO_ORB", "6.5")
	t.Setenv("ASTRO_VALIDATE_COORDINATES", "false")
	t.Setenv("VALKEY_ENABLED", "true")
	t.Setenv("VALKEY_ADDR", "localhost:6379")
	t.Setenv("POSTGRES_MAX_CONNS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, []string{"https://morpheus.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "whole_sign", cfg.Astro.HouseSystem)
	require.Equal(t, 5, cfg.Astro.TopTransits)
	require.Equal(t, 6.5, cfg.Astro.Orb)
	require.Equal(t, time.Hour, cfg.Astro.PositionCacheTTL)
	require.False(t, cfg.Astro.ValidateCoordinates)
	require.Equal(t, 10, cfg.Dream.DefaultListLimit)
	require.True(t, cfg.Valkey.Enabled)
	require.Equal(t, "localhost:6379", cfg.Valkey.Addr)
	require.Equal(t, int32(8), cfg.Postgres.MaxConns)
	// untouched sections keep defaults
	require.Equal(t, 0.5, cfg.Breaker.FailureThreshold)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }},
		{"unknown house system", func(c *Config) { c.Astro.HouseSystem = "koch" }},
		{"zero top transits", func(c *Config) { c.Astro.TopTransits = 0 }},
		{"orb too wide", func(c *Config) { c.Astro.Orb = 45 }},
		{"bad timezone", func(c *Config) { c.Astro.BirthTimezone = "Not/AZone" }},
		{"list limits inverted", func(c *Config) { c.Dream.MaxListLimit = 5 }},
		{"valkey without addr", func(c *Config) { c.Valkey.Enabled = true }},
		{"breaker threshold", func(c *Config) { c.Breaker.FailureThreshold = 0 }},
		{"rate limit burst", func(c *Config) { c.HTTP.RateLimit.Burst = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}
