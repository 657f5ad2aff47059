package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"build-notifier/internal/adapter/jenkins"
	"build-notifier/internal/config"
	"build-notifier/internal/di"
	"build-notifier/internal/domain/model"
)

// notifyFlags holds the flags for the notify command.
type notifyFlags struct {
	build  string
	job    string
	number int
}

func newNotifyCmd(root *rootFlags) *cobra.Command {
	opts := &notifyFlags{}

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a notification for one build",
		Long: `Send a notification for one build.

The build is read from a JSON descriptor (--build, "-" for stdin) or fetched
from Jenkins (--job, optionally --number; defaults to the last completed build).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			if opts.job != "" {
				cfg.Jenkins.Job = opts.job
			}

			build, err := resolveBuild(cmd, opts, cfg)
			if err != nil {
				return err
			}

			notifier, err := di.InitializeNotifier(cfg)
			if err != nil {
				return err
			}

			outcome, err := notifier.Run(cmd.Context(), *build)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.build, "build", "b", "", `Path to a build descriptor JSON file, or "-" for stdin`)
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Jenkins job to fetch the build from")
	cmd.Flags().IntVarP(&opts.number, "number", "n", 0, "Jenkins build number (default: last completed build)")
	cmd.MarkFlagsMutuallyExclusive("build", "job")

	return cmd
}

func resolveBuild(cmd *cobra.Command, opts *notifyFlags, cfg *config.Config) (*model.Build, error) {
	if opts.build != "" {
		return readDescriptor(cmd, opts.build)
	}

	source, err := di.InitializeBuildSource(cfg)
	if err != nil {
		return nil, err
	}
	if opts.number > 0 {
		return source.Build(cmd.Context(), cfg.Jenkins.Job, opts.number)
	}
	return source.LastCompletedBuild(cmd.Context(), cfg.Jenkins.Job)
}

func readDescriptor(cmd *cobra.Command, path string) (*model.Build, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path) //nolint:gosec // path comes from the operator
		if err != nil {
			return nil, fmt.Errorf("open build descriptor: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	return jenkins.DecodeBuild(r)
}
