package ports

import "build-notifier/internal/domain/model"

// MessageBuilder renders a build into a serialized chat payload.
// Implementations must not fail on builds that have no result yet.
type MessageBuilder interface {
	Build(build model.Build) (string, error)
}

// BaseURLProvider resolves the absolute base URL of the CI server.
// An empty string means no base URL is known.
type BaseURLProvider interface {
	BaseURL() string
}
