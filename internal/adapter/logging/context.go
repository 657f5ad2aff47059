package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

var deliveryIDKey = contextKey{}

// WithDeliveryID returns a context carrying the given delivery ID.
func WithDeliveryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deliveryIDKey, id)
}

// WithNewDeliveryID returns a context carrying a fresh random delivery ID, and the ID.
func WithNewDeliveryID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithDeliveryID(ctx, id), id
}

// DeliveryID extracts the delivery ID from the context, or "" when none is set.
func DeliveryID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(deliveryIDKey).(string)
	return id
}
