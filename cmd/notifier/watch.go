package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"build-notifier/internal/di"
)

func newWatchCmd(root *rootFlags) *cobra.Command {
	var job, schedule string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a Jenkins job and notify about every completed build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			if job != "" {
				cfg.Jenkins.Job = job
			}
			if schedule != "" {
				cfg.Watch.Schedule = schedule
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			application, err := di.InitializeWatcher(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&job, "job", "j", "", "Jenkins job to watch (overrides NOTIFIER_JENKINS_JOB)")
	cmd.Flags().StringVar(&schedule, "schedule", "", `Cron schedule for polling, e.g. "@every 30s" or "*/5 * * * *"`)

	return cmd
}
