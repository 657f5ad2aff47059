package ports

import "context"

// Sender delivers a serialized payload to an endpoint.
// It returns true on confirmed delivery, false on a tolerated rejection
// (rate limiting, bad request) and an error for anything else.
type Sender interface {
	Send(ctx context.Context, endpoint, payload string) (bool, error)
}
