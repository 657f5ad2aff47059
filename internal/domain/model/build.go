package model

import "strings"

// Result is the outcome of a build.
type Result int

const (
	// ResultNone means the build has not concluded yet.
	ResultNone Result = iota
	ResultSuccess
	ResultUnstable
	ResultAborted
	ResultFailure
	ResultNotBuilt
)

// String returns the Jenkins label for the result, or "None" while the build is running.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "SUCCESS"
	case ResultUnstable:
		return "UNSTABLE"
	case ResultAborted:
		return "ABORTED"
	case ResultFailure:
		return "FAILURE"
	case ResultNotBuilt:
		return "NOT_BUILT"
	default:
		return "None"
	}
}

// ParseResult maps a Jenkins result label to a Result. Unknown and empty labels yield ResultNone.
func ParseResult(label string) Result {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "SUCCESS":
		return ResultSuccess
	case "UNSTABLE":
		return ResultUnstable
	case "ABORTED":
		return ResultAborted
	case "FAILURE":
		return ResultFailure
	case "NOT_BUILT":
		return ResultNotBuilt
	default:
		return ResultNone
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Result) UnmarshalText(text []byte) error {
	*r = ParseResult(string(text))
	return nil
}

// CauseKind tags the variant held by a Cause.
type CauseKind int

const (
	CauseUnknown CauseKind = iota
	CauseSCMTrigger
	CauseUserTrigger
	CauseUpstreamTrigger
)

// Cause describes why a build started. Only the fields of its Kind are meaningful.
type Cause struct {
	Kind CauseKind
	// ShortDescription is set for SCM triggers.
	ShortDescription string
	// UserName is set for user triggers.
	UserName string
	// Upstream holds the causes of the upstream build for upstream triggers.
	Upstream []Cause
}

// SCMTrigger builds an SCM polling cause.
func SCMTrigger(shortDescription string) Cause {
	return Cause{Kind: CauseSCMTrigger, ShortDescription: shortDescription}
}

// UserTrigger builds a cause for a build started by a user.
func UserTrigger(userName string) Cause {
	return Cause{Kind: CauseUserTrigger, UserName: userName}
}

// UpstreamTrigger builds a cause for a build started by an upstream job.
func UpstreamTrigger(nested ...Cause) Cause {
	return Cause{Kind: CauseUpstreamTrigger, Upstream: nested}
}

// Build is a read-only snapshot of a completed (or running) job execution.
type Build struct {
	JobDisplayName string
	Number         int
	Result         Result
	Timestamp      string
	// URL is relative to the CI server base URL, e.g. "/job/app/5/".
	URL    string
	Causes []Cause
}

// FirstCause returns the first cause of the given kind in list order.
func FirstCause(causes []Cause, kind CauseKind) (Cause, bool) {
	for _, cause := range causes {
		if cause.Kind == kind {
			return cause, true
		}
	}
	return Cause{}, false
}
