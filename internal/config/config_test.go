package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"build-notifier/internal/domain/notifyerr"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NOTIFIER_WEBHOOK_URL", "NOTIFIER_ONLY_ON_FAILURE", "NOTIFIER_BASE_URL", "NOTIFIER_USERNAME",
		"NOTIFIER_FORMAT", "NOTIFIER_REQUEST_TIMEOUT", "NOTIFIER_LOG_LEVEL", "NOTIFIER_JENKINS_URL",
		"JENKINS_URL", "NOTIFIER_JENKINS_USER", "NOTIFIER_JENKINS_TOKEN", "NOTIFIER_JENKINS_JOB",
		"NOTIFIER_WATCH_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notifier.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Username != "Jenkins" || cfg.Format != "mattermost" || cfg.RequestTimeout != 30*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Watch.Schedule != "@every 1m" {
		t.Errorf("unexpected default schedule %q", cfg.Watch.Schedule)
	}

	err = cfg.Validate()
	if !notifyerr.IsKind(err, notifyerr.KindConfig) {
		t.Errorf("expected config error for missing webhook, got %v", err)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
webhook_url: https://chat.example.com/hooks/yaml
only_on_failure: true
base_url: https://ci.example.com
format: discord
request_timeout: 5s
jenkins:
  url: https://ci.example.com
  job: api
watch:
  schedule: "*/5 * * * *"
`)
	t.Setenv("NOTIFIER_WEBHOOK_URL", "https://chat.example.com/hooks/env")
	t.Setenv("NOTIFIER_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if cfg.WebhookURL != "https://chat.example.com/hooks/env" {
		t.Errorf("expected env to override yaml, got %q", cfg.WebhookURL)
	}
	if !cfg.OnlyOnFailure {
		t.Error("expected only_on_failure from yaml")
	}
	if cfg.Format != "discord" {
		t.Errorf("unexpected format %q", cfg.Format)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.Jenkins.Job != "api" {
		t.Errorf("unexpected job %q", cfg.Jenkins.Job)
	}
	if err := cfg.ValidateJenkins(); err != nil {
		t.Errorf("ValidateJenkins() error: %v", err)
	}
}

func TestJenkinsURLFallsBackToHostVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv("JENKINS_URL", "https://jenkins.local/")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Jenkins.URL != "https://jenkins.local/" {
		t.Errorf("unexpected jenkins URL %q", cfg.Jenkins.URL)
	}
	if err := cfg.ValidateJenkins(); !notifyerr.IsKind(err, notifyerr.KindConfig) {
		t.Errorf("expected missing job to be a config error, got %v", err)
	}
}

func TestInvalidEnvValuesKeepFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTIFIER_ONLY_ON_FAILURE", "sometimes")
	t.Setenv("NOTIFIER_REQUEST_TIMEOUT", "soon")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.OnlyOnFailure {
		t.Error("expected invalid bool to be ignored")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.RequestTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"blank webhook", func(c *Config) { c.WebhookURL = "   " }, true},
		{"unknown format", func(c *Config) { c.Format = "teams" }, true},
		{"upper-case format", func(c *Config) { c.Format = "Discord" }, false},
		{"bad schedule", func(c *Config) { c.Watch.Schedule = "every minute" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.WebhookURL = "https://chat.example.com/hooks/x"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.RequestTimeout <= 0 {
				t.Error("expected timeout to be defaulted")
			}
		})
	}
}

func TestLoadYAMLParseError(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "webhook_url: [unterminated")
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}
