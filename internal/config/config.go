package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// ErrMissingDatabaseURL is returned when no database DSN is configured.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// Config holds application configuration.
type Config struct {
	DatabaseURL string
	RedisURL    string
	ServerPort  string

	// SiteURL is the canonical public base URL (no trailing slash) used in
	// canonical links, JSON-LD and sitemap locations.
	SiteURL  string
	SiteName string

	// CacheMaxAge is the max-age (seconds) emitted in Cache-Control headers.
	CacheMaxAge int
}

// Load builds config from environment variables.
// If DATABASE_URL is not set, Load tries to load .env.local and .env from the
// current directory first. DATABASE_URL is required; everything else defaults.
func Load() (*Config, error) {
	if os.Getenv("DATABASE_URL") == "" {
		loadEnvFiles()
	}
	c := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		SiteURL:     os.Getenv("SITE_URL"),
		SiteName:    os.Getenv("SITE_NAME"),
	}
	if s := os.Getenv("CACHE_MAX_AGE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			c.CacheMaxAge = n
		}
	}
	c.applyDefaults()
	if c.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.SiteURL == "" {
		c.SiteURL = "https://www.natokghor.com"
	}
	// Canonical URLs are composed by plain concatenation with paths.
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	if c.SiteName == "" {
		c.SiteName = "NatokGhor"
	}
	if c.CacheMaxAge <= 0 {
		c.CacheMaxAge = 3600
	}
}
