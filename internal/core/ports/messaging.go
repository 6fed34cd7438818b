package ports

import "context"

// EventPublisher publishes domain events (load.created, load.ready_to_quote)
// to the event stream for downstream services.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value any) error
}

// OutboundEmail is a rendered email handed to the communications worker.
type OutboundEmail struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	ThreadID string `json:"thread_id,omitempty"`
	Kind     string `json:"kind"` // clarification_request, quote
}

// EmailPublisher enqueues outbound email jobs; actual delivery happens in the
// communications worker, not in this service.
type EmailPublisher interface {
	PublishEmail(ctx context.Context, email OutboundEmail) error
}

// DedupStore remembers processed inbound Message-IDs so webhook retries and
// provider redeliveries do not create duplicate loads.
type DedupStore interface {
	IsDuplicate(ctx context.Context, messageID string) (bool, error)
	Mark(ctx context.Context, messageID string) error
}
