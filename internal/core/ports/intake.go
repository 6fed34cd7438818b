package ports

import (
	"context"
	"time"

	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/intent"
)

// InboundEmailInput is one email delivered by the ingestion webhook. The
// Extracted payload holds whatever structured fields the upstream extraction
// step pulled from the message; intake never parses free text itself.
type InboundEmailInput struct {
	MessageID  string
	ThreadID   string
	From       string
	Subject    string
	Body       string
	ReceivedAt time.Time
	Extracted  freight.LoadData
}

// Intake actions reported back to callers and metrics.
const (
	IntakeActionCreated       = "created"        // new load, complete, ready to quote
	IntakeActionClarification = "clarification"  // new or updated load, info requested
	IntakeActionCompleted     = "completed"      // reply filled the last missing field
	IntakeActionDuplicate     = "duplicate"      // message already processed
	IntakeActionSkipped       = "skipped"        // intent not actionable by intake
	IntakeActionUnmatched     = "unmatched"      // reply with no open load to merge into
)

// IntakeResult describes what intake did with one email.
type IntakeResult struct {
	Action        string
	Intent        intent.Intent
	LoadID        string
	LoadNumber    string
	FreightType   freight.FreightType
	MissingFields []string
	Warnings      []string
}

// IntakeService processes inbound shipper email.
type IntakeService interface {
	ProcessEmail(ctx context.Context, in InboundEmailInput) (*IntakeResult, error)
}
