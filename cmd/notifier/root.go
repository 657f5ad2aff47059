package main

import (
	"github.com/spf13/cobra"

	"build-notifier/internal/config"
	"build-notifier/internal/version"
)

// rootFlags holds the flags shared by every command.
type rootFlags struct {
	config        string
	webhook       string
	onlyOnFailure bool
	format        string
	logLevel      string
}

func newRootCmd() *cobra.Command {
	opts := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "notifier",
		Short: "Publish build status to a chat webhook",
		Long: `notifier posts the outcome of a CI build to a chat platform webhook
(Mattermost, Slack compatible or Discord).

Run it as a post-build step with "notify", or let it follow a Jenkins job
with "watch".`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.config, "config", "c", config.DefaultConfigFile, "Path to YAML configuration file")
	pf.StringVar(&opts.webhook, "webhook", "", "Webhook URL (overrides NOTIFIER_WEBHOOK_URL)")
	pf.BoolVar(&opts.onlyOnFailure, "only-on-failure", false, "Skip notifications for successful builds")
	pf.StringVar(&opts.format, "format", "", "Message format: mattermost or discord")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newNotifyCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig resolves defaults < YAML < ENV < flags and validates the result.
func loadConfig(cmd *cobra.Command, opts *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadFrom(opts.config)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("webhook") {
		cfg.WebhookURL = opts.webhook
	}
	if flags.Changed("only-on-failure") {
		cfg.OnlyOnFailure = opts.onlyOnFailure
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
