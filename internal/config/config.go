// Package config handles configuration loading for the hueflow server.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
	Render RenderConfig `yaml:"render"`
	Store  StoreConfig  `yaml:"store"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	StripSizeMB     int `yaml:"strip_size_mb"`
	StripTTLMinutes int `yaml:"strip_ttl_minutes"`
	ResultCacheSize int `yaml:"result_cache_size"`
}

// RenderConfig contains gradient strip rendering settings.
type RenderConfig struct {
	StripWidth     int    `yaml:"strip_width"`
	StripHeight    int    `yaml:"strip_height"`
	DefaultPalette string `yaml:"default_palette"`
}

// StoreConfig contains palette persistence settings.
type StoreConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Cache: CacheConfig{
			StripSizeMB:     64,
			StripTTLMinutes: 10,
			ResultCacheSize: 1000,
		},
		Render: RenderConfig{
			StripWidth:     512,
			StripHeight:    64,
			DefaultPalette: "sunset",
		},
		Store: StoreConfig{
			SQLitePath: "./data/palettes.sqlite",
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	if cfg.Cache.StripSizeMB == 0 {
		cfg.Cache.StripSizeMB = defaults.Cache.StripSizeMB
	}
	if cfg.Cache.StripTTLMinutes == 0 {
		cfg.Cache.StripTTLMinutes = defaults.Cache.StripTTLMinutes
	}
	if cfg.Cache.ResultCacheSize == 0 {
		cfg.Cache.ResultCacheSize = defaults.Cache.ResultCacheSize
	}
	if cfg.Render.StripWidth == 0 {
		cfg.Render.StripWidth = defaults.Render.StripWidth
	}
	if cfg.Render.StripHeight == 0 {
		cfg.Render.StripHeight = defaults.Render.StripHeight
	}
	if cfg.Render.DefaultPalette == "" {
		cfg.Render.DefaultPalette = defaults.Render.DefaultPalette
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = defaults.Store.SQLitePath
	}
}
