package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"build-notifier/internal/domain/model"
	"build-notifier/internal/domain/ports"
	"build-notifier/internal/usecase"
)

// maxCatchUp bounds how many missed builds a single poll notifies about.
const maxCatchUp = 20

// Config controls the watch loop.
type Config struct {
	Schedule    string
	Job         string
	PollTimeout time.Duration
}

// App polls a Jenkins job on a cron schedule and notifies once per completed build.
type App struct {
	cron     *cron.Cron
	source   ports.BuildSource
	usecase  *usecase.NotifyBuild
	logger   ports.Logger
	schedule string
	job      string
	timeout  time.Duration

	mu       sync.Mutex
	lastSeen int
}

// New constructs an App instance.
func New(source ports.BuildSource, notify *usecase.NotifyBuild, logger ports.Logger, cfg Config) *App {
	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &App{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		source:   source,
		usecase:  notify,
		logger:   logger,
		schedule: cfg.Schedule,
		job:      cfg.Job,
		timeout:  timeout,
	}
}

// Run records the latest completed build immediately and then polls according to the cron schedule.
func (a *App) Run(ctx context.Context) error {
	if a.job == "" {
		return errors.New("watch: no job configured")
	}
	if err := a.scheduleJob(); err != nil {
		return err
	}

	a.logger.Info(ctx, "running first poll immediately", "job", a.job)
	if err := a.Poll(ctx); err != nil {
		a.logger.Error(ctx, "initial poll failed", "error", err)
	}

	a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

// Poll checks the job for builds completed since the last poll and notifies about each.
// The first poll only records the latest build so restarts do not repeat notifications.
func (a *App) Poll(ctx context.Context) error {
	latest, err := a.source.LastCompletedBuild(ctx, a.job)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lastSeen == 0 {
		a.lastSeen = latest.Number
		a.logger.Info(ctx, "watching job", "job", a.job, "last_completed", latest.Number)
		return nil
	}
	if latest.Number <= a.lastSeen {
		return nil
	}

	from := a.lastSeen + 1
	if latest.Number-from >= maxCatchUp {
		a.logger.Warn(ctx, "too many missed builds, skipping older ones", "job", a.job, "missed", latest.Number-a.lastSeen)
		from = latest.Number - maxCatchUp + 1
	}

	// lastSeen only moves past builds that have finished, so a build still
	// running behind a newer completed one is reported once it concludes.
	done := from - 1
	var errs []error
	for number := from; number <= latest.Number; number++ {
		build := latest
		if number != latest.Number {
			build, err = a.source.Build(ctx, a.job, number)
			if err != nil {
				// Deleted or never-started builds leave gaps in the numbering.
				a.logger.Debug(ctx, "skipping build", "job", a.job, "number", number, "error", err)
				done = number
				continue
			}
		}

		if build.Result == model.ResultNone {
			a.logger.Debug(ctx, "build still running, deferring", "job", a.job, "number", number)
			break
		}

		outcome, err := a.usecase.Run(ctx, *build)
		done = number
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a.logger.Info(ctx, "processed build", "job", a.job, "number", number, "outcome", outcome.String())
	}

	a.lastSeen = done
	return errors.Join(errs...)
}

func (a *App) scheduleJob() error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.Poll(ctx); err != nil {
			a.logger.Error(ctx, "scheduled poll failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	return nil
}
