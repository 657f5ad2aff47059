package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"build-notifier/internal/adapter/logging"
	"build-notifier/internal/domain/model"
	"build-notifier/internal/domain/notifyerr"
	"build-notifier/internal/domain/ports"
)

// Outcome is the result of a single notification attempt.
type Outcome int

const (
	// OutcomeSent means the webhook confirmed delivery.
	OutcomeSent Outcome = iota
	// OutcomeSkipped means the build succeeded and only failures are reported.
	OutcomeSkipped
	// OutcomeRejected means the webhook refused the message (rate limited or bad request).
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRejected:
		return "not delivered"
	default:
		return "unknown"
	}
}

// OK reports whether the host should treat the attempt as successful.
func (o Outcome) OK() bool {
	return o == OutcomeSent || o == OutcomeSkipped
}

// NotifyBuildConfig holds the two settings that drive a notification.
type NotifyBuildConfig struct {
	WebhookURL    string
	OnlyOnFailure bool
}

// NotifyBuild turns a finished build into a chat notification and delivers it.
type NotifyBuild struct {
	builder       ports.MessageBuilder
	sender        ports.Sender
	logger        ports.Logger
	webhookURL    string
	onlyOnFailure bool
}

// NewNotifyBuild constructs a NotifyBuild use case.
func NewNotifyBuild(
	builder ports.MessageBuilder,
	sender ports.Sender,
	logger ports.Logger,
	cfg NotifyBuildConfig,
) *NotifyBuild {
	if logger == nil {
		logger = logging.Discard{}
	}
	return &NotifyBuild{
		builder:       builder,
		sender:        sender,
		logger:        logger,
		webhookURL:    cfg.WebhookURL,
		onlyOnFailure: cfg.OnlyOnFailure,
	}
}

// Run notifies about build. Configuration is checked before anything else,
// so a missing webhook never reaches the network.
func (n *NotifyBuild) Run(ctx context.Context, build model.Build) (Outcome, error) {
	if strings.TrimSpace(n.webhookURL) == "" {
		return OutcomeRejected, notifyerr.ConfigError("missing configuration",
			fmt.Errorf("webhook configuration is mandatory and must not be empty"))
	}

	if n.onlyOnFailure && build.Result == model.ResultSuccess {
		n.logger.Debug(ctx, "skipping notification for successful build", "job", build.JobDisplayName)
		return OutcomeSkipped, nil
	}

	ctx, _ = logging.WithNewDeliveryID(ctx)
	start := time.Now()

	payload, err := n.builder.Build(build)
	if err != nil {
		n.logger.Error(ctx, "failed to build notification", "job", build.JobDisplayName, "error", err)
		return OutcomeRejected, fmt.Errorf("notify build %q: %w", build.JobDisplayName, err)
	}

	delivered, err := n.sender.Send(ctx, n.webhookURL, payload)
	if err != nil {
		n.logger.Error(ctx, "notification failed", "job", build.JobDisplayName, "error", err)
		return OutcomeRejected, fmt.Errorf("notify build %q: %w", build.JobDisplayName, err)
	}

	if !delivered {
		n.logger.Warn(ctx, "notification not delivered", "job", build.JobDisplayName, "result", build.Result.String())
		return OutcomeRejected, nil
	}

	n.logger.Info(ctx, "notification sent",
		"job", build.JobDisplayName,
		"result", build.Result.String(),
		"duration", time.Since(start).String(),
	)
	return OutcomeSent, nil
}
