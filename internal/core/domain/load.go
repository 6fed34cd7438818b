package domain

import (
	"errors"
	"time"

	"github.com/jake-esse/ai-broker/internal/core/freight"
)

// LoadStatus represents the lifecycle state of a load from intake to booking.
type LoadStatus string

const (
	StatusIntakeReceived LoadStatus = "intake_received"
	StatusAwaitingInfo   LoadStatus = "awaiting_info"
	StatusReadyToQuote   LoadStatus = "ready_to_quote"
	StatusQuoted         LoadStatus = "quoted"
	StatusBooked         LoadStatus = "booked"
	StatusCancelled      LoadStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions. A load may
// loop on awaiting_info while clarification rounds are outstanding.
var validTransitions = map[LoadStatus][]LoadStatus{
	StatusIntakeReceived: {StatusAwaitingInfo, StatusReadyToQuote, StatusCancelled},
	StatusAwaitingInfo:   {StatusAwaitingInfo, StatusReadyToQuote, StatusCancelled},
	StatusReadyToQuote:   {StatusQuoted, StatusCancelled},
	StatusQuoted:         {StatusBooked, StatusCancelled},
}

var (
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrLoadNotFound       = errors.New("load not found")
	ErrDuplicateLoad      = errors.New("load already exists")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrCarrierNotFound    = errors.New("carrier not found")
	ErrLoadNotQuotable    = errors.New("load is not ready to quote")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s LoadStatus) CanTransitionTo(next LoadStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ConversationEntry records one email exchanged on a load's thread, inbound or
// outbound, for the audit trail shown on the dashboard.
type ConversationEntry struct {
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Direction string    `json:"direction" bson:"direction"` // "inbound" or "outbound"
	MessageID string    `json:"message_id" bson:"message_id"`
	Kind      string    `json:"kind" bson:"kind"` // tender, clarification_request, missing_info_provided, quote_sent
	Fields    []string  `json:"fields,omitempty" bson:"fields,omitempty"`
}

// Load is the core aggregate: one shipper freight request moving from email
// intake through clarification to a quotable record.
type Load struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	LoadNumber   string           `json:"load_number" bson:"load_number"`
	ShipperEmail string           `json:"shipper_email" bson:"shipper_email"`
	// BrokerID scopes the load to the brokerage operator working it. Empty
	// for freshly ingested loads until one is assigned.
	BrokerID string `json:"broker_id,omitempty" bson:"broker_id,omitempty"`
	ThreadID     string           `json:"thread_id,omitempty" bson:"thread_id,omitempty"`
	Status       LoadStatus       `json:"status" bson:"status"`
	FreightType  freight.FreightType `json:"freight_type" bson:"freight_type"`
	Data         freight.LoadData `json:"data" bson:"data"`

	MissingFields []string `json:"missing_fields" bson:"missing_fields"`
	Warnings      []string `json:"warnings,omitempty" bson:"warnings,omitempty"`
	IsComplete    bool     `json:"is_complete" bson:"is_complete"`

	FollowUpCount   int                 `json:"follow_up_count" bson:"follow_up_count"`
	LatestMessageID string              `json:"latest_message_id,omitempty" bson:"latest_message_id,omitempty"`
	Conversation    []ConversationEntry `json:"conversation" bson:"conversation"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
