package ports

import (
	"context"

	"build-notifier/internal/domain/model"
)

// BuildSource fetches build descriptors from the CI server.
type BuildSource interface {
	LastCompletedBuild(ctx context.Context, job string) (*model.Build, error)
	Build(ctx context.Context, job string, number int) (*model.Build, error)
}
