// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/clashclient/cache"
	"github.com/briangreenhill/clashclient/clash"
)

// Config holds all application configuration
type Config struct {
	API      APIConfig
	Cache    CacheConfig
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// AdminToken guards the gateway's /debug routes; empty leaves them open
	AdminToken string `env:"GATEWAY_ADMIN_TOKEN"`
}

// APIConfig locates and authenticates the upstream API
type APIConfig struct {
	URL     string `env:"CLASH_API_URL" envDefault:"https://api.clashofclans.com"`
	Version string `env:"CLASH_API_VERSION" envDefault:"v1"`
	Token   string `env:"CLASH_API_TOKEN"`
}

// CacheConfig holds response cache settings. Durations maps preference names to
// minutes, e.g. "Default:15,ShortLivedSliding:2", and overrides the built-in table.
type CacheConfig struct {
	Enabled         bool           `env:"CLASH_CACHE_ENABLED" envDefault:"false"`
	Durations       map[string]int `env:"CLASH_CACHE_DURATIONS" envKeyValSeparator:":"`
	MaxEntries      int            `env:"CLASH_CACHE_MAX_ENTRIES"`
	MaxBytes        int64          `env:"CLASH_CACHE_MAX_BYTES"`
	CleanupInterval time.Duration  `env:"CLASH_CACHE_CLEANUP_INTERVAL" envDefault:"5m"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if _, err := cfg.CacheSettings(); err != nil {
		return nil, err
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Value answers the string-keyed lookups made by the client. Keys match
// case-insensitively and blank values count as missing.
func (c *Config) Value(key string) (string, bool) {
	var v string
	switch {
	case strings.EqualFold(key, clash.KeyAPIURL):
		v = c.API.URL
	case strings.EqualFold(key, clash.KeyAPIVersion):
		v = c.API.Version
	case strings.EqualFold(key, clash.KeyAPIToken):
		v = c.API.Token
	case strings.EqualFold(key, cache.KeyEnabled):
		v = strconv.FormatBool(c.Cache.Enabled)
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// HasToken returns true if an API token is configured
func (c *Config) HasToken() bool {
	return strings.TrimSpace(c.API.Token) != ""
}

// CacheSettings resolves the cache switch and duration table
func (c *Config) CacheSettings() (cache.Settings, error) {
	settings := cache.DefaultSettings()
	settings.Enabled = c.Cache.Enabled
	for name, minutes := range c.Cache.Durations {
		pref, err := cache.ParsePreference(name)
		if err != nil {
			return cache.Settings{}, fmt.Errorf("invalid CLASH_CACHE_DURATIONS: %w", err)
		}
		settings.Durations[pref] = minutes
	}
	if err := settings.Validate(); err != nil {
		return cache.Settings{}, err
	}
	return settings, nil
}

// StoreOptions returns the store limits configured in the environment
func (c *Config) StoreOptions() []cache.Option {
	return []cache.Option{
		cache.WithMaxEntries(c.Cache.MaxEntries),
		cache.WithMaxBytes(c.Cache.MaxBytes),
		cache.WithCleanupInterval(c.Cache.CleanupInterval),
	}
}

// Level returns the configured log level, defaulting to info
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewStore builds the response cache described by the configuration
func (c *Config) NewStore(log zerolog.Logger) (*cache.Store, error) {
	settings, err := c.CacheSettings()
	if err != nil {
		return nil, err
	}
	return cache.NewStore(settings, append(c.StoreOptions(), cache.WithLogger(log))...), nil
}
