// Package message renders build descriptors into chat platform payloads.
package message

import (
	"fmt"

	"build-notifier/internal/domain/model"
	"build-notifier/internal/domain/ports"
)

const (
	defaultUsername = "Jenkins"

	colorSuccess = "#228a00"
	colorFailure = "#8B0000"

	unknownCause = "Started by unknown cause"
)

// icons maps results to chat emoji. ResultNone has no entry and renders as an empty icon.
var icons = map[model.Result]string{
	model.ResultSuccess:  ":sunny:",
	model.ResultUnstable: ":partly_sunny:",
	model.ResultAborted:  ":skull:",
	model.ResultFailure:  ":fire:",
	model.ResultNotBuilt: ":boom:",
}

// Options configures the builders in this package.
type Options struct {
	// BaseURL resolves the CI server root prepended to relative build URLs. May be nil.
	BaseURL ports.BaseURLProvider
	// Username is the display name of the posting bot. Defaults to "Jenkins".
	Username string
}

func (o Options) username() string {
	if o.Username == "" {
		return defaultUsername
	}
	return o.Username
}

func (o Options) baseURL() string {
	if o.BaseURL == nil {
		return ""
	}
	return o.BaseURL.BaseURL()
}

// Icon returns the emoji for a result, or "" when the result has none.
func Icon(result model.Result) string {
	return icons[result]
}

// Color returns the attachment color: green for success, dark red for everything else.
func Color(result model.Result) string {
	if result == model.ResultSuccess {
		return colorSuccess
	}
	return colorFailure
}

// Title returns "Job: <name> Status: <result>".
func Title(build model.Build) string {
	return fmt.Sprintf("Job: %s Status: %s", build.JobDisplayName, build.Result)
}

// DescribeCause explains why a build started. SCM triggers win over user
// triggers, which win over a user found behind an upstream trigger.
func DescribeCause(causes []model.Cause) string {
	if scm, ok := model.FirstCause(causes, model.CauseSCMTrigger); ok {
		return scm.ShortDescription
	}

	if user, ok := model.FirstCause(causes, model.CauseUserTrigger); ok {
		return startedBy(user.UserName)
	}

	if upstream, ok := model.FirstCause(causes, model.CauseUpstreamTrigger); ok {
		if user, ok := upstreamUser(upstream.Upstream); ok {
			return startedBy(user.UserName)
		}
	}

	return unknownCause
}

// upstreamUser finds the first user trigger at this level, then descends
// into nested upstream triggers in list order.
func upstreamUser(causes []model.Cause) (model.Cause, bool) {
	if user, ok := model.FirstCause(causes, model.CauseUserTrigger); ok {
		return user, true
	}
	for _, cause := range causes {
		if cause.Kind != model.CauseUpstreamTrigger {
			continue
		}
		if user, ok := upstreamUser(cause.Upstream); ok {
			return user, true
		}
	}
	return model.Cause{}, false
}

func startedBy(user string) string {
	return fmt.Sprintf("Started by %s", user)
}

// absoluteURL joins the base URL and the build's relative URL verbatim.
func absoluteURL(opts Options, build model.Build) string {
	return opts.baseURL() + build.URL
}

// Text returns "<icon> <cause> <timestamp> [View](<url>)".
func Text(opts Options, build model.Build) string {
	return fmt.Sprintf("%s %s %s [View](%s)",
		Icon(build.Result), DescribeCause(build.Causes), build.Timestamp, absoluteURL(opts, build))
}
