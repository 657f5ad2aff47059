package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"build-notifier/internal/domain/notifyerr"
)

// Config contains runtime configuration values.
type Config struct {
	WebhookURL     string        `yaml:"webhook_url"`
	OnlyOnFailure  bool          `yaml:"only_on_failure"`
	BaseURL        string        `yaml:"base_url"`
	Username       string        `yaml:"username"`
	Format         string        `yaml:"format"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
	Jenkins        Jenkins       `yaml:"jenkins"`
	Watch          Watch         `yaml:"watch"`
}

// Jenkins holds the connection used to fetch build descriptors.
type Jenkins struct {
	URL   string `yaml:"url"`
	User  string `yaml:"user"`
	Token string `yaml:"token"`
	Job   string `yaml:"job"`
}

// Watch configures the polling scheduler.
type Watch struct {
	Schedule string `yaml:"schedule"`
}

const (
	// DefaultConfigFile is the path checked for YAML configuration.
	DefaultConfigFile = "notifier.yaml"

	defaultUsername = "Jenkins"
	defaultFormat   = "mattermost"
	defaultTimeout  = 30 * time.Second
	defaultLogLevel = "info"
	defaultSchedule = "@every 1m"
)

var formats = map[string]bool{"mattermost": true, "discord": true}

// Defaults returns a Config with every optional field populated.
func Defaults() Config {
	return Config{
		Username:       defaultUsername,
		Format:         defaultFormat,
		RequestTimeout: defaultTimeout,
		LogLevel:       defaultLogLevel,
		Watch:          Watch{Schedule: defaultSchedule},
	}
}

// Load builds a Config from DefaultConfigFile and environment variables.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config using the hierarchy: defaults < YAML < ENV.
// A missing YAML file is not an error. The result is not validated, so
// callers can apply flag overrides before calling Validate.
func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, path); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)
	return &cfg, nil
}

// Validate fails closed on configuration the notifier cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.WebhookURL) == "" {
		return notifyerr.ConfigError("webhook configuration is mandatory and must not be empty", nil)
	}

	if c.Format == "" {
		c.Format = defaultFormat
	}
	c.Format = strings.ToLower(c.Format)
	if !formats[c.Format] {
		return notifyerr.ConfigError(fmt.Sprintf("unknown format %q", c.Format), nil)
	}

	if c.Username == "" {
		c.Username = defaultUsername
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultTimeout
	}

	if c.Watch.Schedule == "" {
		c.Watch.Schedule = defaultSchedule
	}
	if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
		return notifyerr.ConfigError(fmt.Sprintf("invalid watch schedule %q", c.Watch.Schedule), err)
	}

	return nil
}

// ValidateJenkins checks the settings needed to fetch builds from Jenkins.
func (c *Config) ValidateJenkins() error {
	if c.Jenkins.URL == "" {
		return notifyerr.ConfigError("jenkins URL is required (NOTIFIER_JENKINS_URL or JENKINS_URL)", nil)
	}
	if c.Jenkins.Job == "" {
		return notifyerr.ConfigError("jenkins job is required (NOTIFIER_JENKINS_JOB)", nil)
	}
	return nil
}

func loadYAML(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays environment variables onto cfg. Only non-empty values override.
func loadEnv(cfg *Config) {
	cfg.WebhookURL = getenvDefault("NOTIFIER_WEBHOOK_URL", cfg.WebhookURL)
	cfg.OnlyOnFailure = parseBoolDefault("NOTIFIER_ONLY_ON_FAILURE", cfg.OnlyOnFailure)
	cfg.BaseURL = getenvDefault("NOTIFIER_BASE_URL", cfg.BaseURL)
	cfg.Username = getenvDefault("NOTIFIER_USERNAME", cfg.Username)
	cfg.Format = getenvDefault("NOTIFIER_FORMAT", cfg.Format)
	cfg.RequestTimeout = parseDurationDefault("NOTIFIER_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.LogLevel = getenvDefault("NOTIFIER_LOG_LEVEL", cfg.LogLevel)
	cfg.Jenkins.URL = getenvDefault("NOTIFIER_JENKINS_URL", getenvDefault("JENKINS_URL", cfg.Jenkins.URL))
	cfg.Jenkins.User = getenvDefault("NOTIFIER_JENKINS_USER", cfg.Jenkins.User)
	cfg.Jenkins.Token = getenvDefault("NOTIFIER_JENKINS_TOKEN", cfg.Jenkins.Token)
	cfg.Jenkins.Job = getenvDefault("NOTIFIER_JENKINS_JOB", cfg.Jenkins.Job)
	cfg.Watch.Schedule = getenvDefault("NOTIFIER_WATCH_SCHEDULE", cfg.Watch.Schedule)
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolDefault(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
