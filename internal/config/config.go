package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServer            = "http://127.0.0.1:8000"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultSlideshowInterval = 3 * time.Second
	DefaultMaxUploadBytes    = 5 * 1024 * 1024
	DefaultLogLevel          = "info"
)

// DefaultAllowedTypes are the MIME types the upload form accepts.
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/jpg"}

// Config holds all gallery client configuration.
type Config struct {
	// Base URL of the gallery service
	Server string `yaml:"server"`

	HTTP      HTTPConfig      `yaml:"http"`
	Upload    UploadConfig    `yaml:"upload"`
	Slideshow SlideshowConfig `yaml:"slideshow"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HTTPConfig configures the API client.
type HTTPConfig struct {
	// Zero means no client-side timeout: a hung request waits for ctx.
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 = unlimited
	// Directory of extra CA certificates (.crt/.pem) to trust
	CADir string `yaml:"ca_dir"`
}

// UploadConfig configures local validation of uploads.
type UploadConfig struct {
	MaxBytes     int64    `yaml:"max_bytes"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// SlideshowConfig configures the rotator.
type SlideshowConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: DefaultServer,
		HTTP: HTTPConfig{
			Timeout: DefaultHTTPTimeout,
		},
		Upload: UploadConfig{
			MaxBytes:     DefaultMaxUploadBytes,
			AllowedTypes: append([]string(nil), DefaultAllowedTypes...),
		},
		Slideshow: SlideshowConfig{
			Interval: DefaultSlideshowInterval,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GALLERY_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("GALLERY_CA_DIR"); v != "" {
		c.HTTP.CADir = v
	}
	if v := os.Getenv("GALLERY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	c.Server = strings.TrimRight(c.Server, "/")
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.Server)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("http.requests_per_second must not be negative")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	if len(c.Upload.AllowedTypes) == 0 {
		return fmt.Errorf("upload.allowed_types must not be empty")
	}
	if c.Slideshow.Interval <= 0 {
		return fmt.Errorf("slideshow.interval must be positive")
	}
	return nil
}
