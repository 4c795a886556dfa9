package repository

import (
	"context"
	"time"
)

// InvalidationRequest asks the cache layer to drop all entries matching a
// glob pattern. Published by administrative tooling, consumed by the API
// process; never part of the normal request flow.
type InvalidationRequest struct {
	Pattern     string    `json:"pattern"`
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// InvalidationQueue is the message-queue contract for out-of-band cache
// invalidation.
type InvalidationQueue interface {
	// PublishInvalidation sends an invalidation request to the queue.
	PublishInvalidation(ctx context.Context, req InvalidationRequest) error

	// ConsumeInvalidations processes invalidation requests until ctx is
	// cancelled. The handler is invoked once per message.
	ConsumeInvalidations(ctx context.Context, handler func(req InvalidationRequest) error) error
}
