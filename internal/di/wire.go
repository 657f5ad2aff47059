//go:build wireinject

package di

import (
	"github.com/google/wire"

	"build-notifier/internal/adapter/logging"
	"build-notifier/internal/app"
	"build-notifier/internal/config"
	"build-notifier/internal/domain/ports"
	"build-notifier/internal/usecase"
)

var loggerSet = wire.NewSet(
	provideSlogLogger,
	logging.New,
	wire.Bind(new(ports.Logger), new(*logging.SLogger)),
)

var notifySet = wire.NewSet(
	loggerSet,
	provideBaseURL,
	provideMessageBuilder,
	provideSender,
	provideNotifyConfig,
	usecase.NewNotifyBuild,
)

// InitializeNotifier wires the one-shot notification use case.
func InitializeNotifier(cfg *config.Config) (*usecase.NotifyBuild, error) {
	wire.Build(notifySet)
	return nil, nil
}

// InitializeBuildSource wires the Jenkins client used to look up builds.
func InitializeBuildSource(cfg *config.Config) (ports.BuildSource, error) {
	wire.Build(loggerSet, provideBuildSource)
	return nil, nil
}

// InitializeWatcher wires the scheduled Jenkins watcher.
func InitializeWatcher(cfg *config.Config) (*app.App, error) {
	wire.Build(
		notifySet,
		provideBuildSource,
		provideWatchConfig,
		app.New,
	)
	return nil, nil
}
