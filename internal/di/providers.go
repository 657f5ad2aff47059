package di

import (
	"log/slog"
	"os"

	"build-notifier/internal/adapter/jenkins"
	"build-notifier/internal/adapter/location"
	"build-notifier/internal/adapter/logging"
	"build-notifier/internal/adapter/message"
	"build-notifier/internal/adapter/webhook"
	"build-notifier/internal/app"
	"build-notifier/internal/config"
	"build-notifier/internal/domain/ports"
	"build-notifier/internal/usecase"
)

// provideSlogLogger writes JSON records to stderr; stdout is reserved for command output.
func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stderr, cfg.LogLevel)
}

// provideBaseURL prefers the explicit base URL, then the Jenkins root, then
// the legacy HUDSON_URL variable Jenkins still exports to build steps.
func provideBaseURL(cfg *config.Config) ports.BaseURLProvider {
	return location.Trimmed{Provider: location.Chain{
		location.Static(cfg.BaseURL),
		location.Static(cfg.Jenkins.URL),
		location.Env{"HUDSON_URL"},
	}}
}

func provideMessageBuilder(cfg *config.Config, baseURL ports.BaseURLProvider) (ports.MessageBuilder, error) {
	return message.New(cfg.Format, message.Options{
		BaseURL:  baseURL,
		Username: cfg.Username,
	})
}

func provideSender(cfg *config.Config, logger ports.Logger) ports.Sender {
	return webhook.NewSender(cfg.RequestTimeout, logger)
}

func provideNotifyConfig(cfg *config.Config) usecase.NotifyBuildConfig {
	return usecase.NotifyBuildConfig{
		WebhookURL:    cfg.WebhookURL,
		OnlyOnFailure: cfg.OnlyOnFailure,
	}
}

func provideBuildSource(cfg *config.Config, logger ports.Logger) (ports.BuildSource, error) {
	if err := cfg.ValidateJenkins(); err != nil {
		return nil, err
	}
	client, err := jenkins.NewClient(cfg.Jenkins.URL, cfg.Jenkins.User, cfg.Jenkins.Token, cfg.RequestTimeout, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideWatchConfig(cfg *config.Config) app.Config {
	return app.Config{
		Schedule: cfg.Watch.Schedule,
		Job:      cfg.Jenkins.Job,
	}
}
