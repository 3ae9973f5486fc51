// Package config loads application configuration from a YAML file with
// environment expansion.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults assume a bare checkout layout, so both tools run without a
// config file at all.
const (
	defaultSubject     = "Trump"
	defaultTitleFormat = "Est-ce que %s a encore dit une connerie aujourd'hui ?"
	defaultStorePath   = "data/events.md"
	defaultFeedsPath   = "data/feeds.txt"
	defaultOutputDir   = "public"
	defaultUserAgent   = "Mozilla/5.0 (compatible; ouinon/1.0)"
	defaultTimeout     = 15
	defaultLogLevel    = "info"
)

// Config holds the application configuration.
type Config struct {
	Subject  string `yaml:"subject"`
	LogLevel string `yaml:"log_level"`
	Store    Store  `yaml:"store"`
	Feeds    Feeds  `yaml:"feeds"`
	Site     Site   `yaml:"site"`
	HTTP     HTTP   `yaml:"http"`
}

// Store configures the event log location.
type Store struct {
	Path string `yaml:"path"`
}

// Feeds configures the feed source list location.
type Feeds struct {
	Path string `yaml:"path"`
}

// Site configures the rendered status page.
type Site struct {
	Title     string `yaml:"title"`
	OutputDir string `yaml:"output_dir"`
}

// HTTP configures outbound requests.
type HTTP struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// Timeout returns the per-request budget.
func (h HTTP) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// Load reads the YAML file at path, expanding ${VAR} references from the
// environment. A .env file in the working directory is loaded first when
// present. A missing config file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// run on defaults
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Subject) == "" {
		c.Subject = defaultSubject
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Store.Path == "" {
		c.Store.Path = defaultStorePath
	}
	if c.Feeds.Path == "" {
		c.Feeds.Path = defaultFeedsPath
	}
	if c.Site.Title == "" {
		c.Site.Title = fmt.Sprintf(defaultTitleFormat, c.Subject)
	}
	if c.Site.OutputDir == "" {
		c.Site.OutputDir = defaultOutputDir
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = defaultTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = defaultUserAgent
	}
}

func (c *Config) validate() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive, got %d", c.HTTP.TimeoutSeconds)
	}
	return nil
}
