package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/intent"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// Event keys published to the event stream.
const (
	eventLoadCreated      = "load.created"
	eventLoadReadyToQuote = "load.ready_to_quote"
)

type intakeService struct {
	loads      ports.LoadRepository
	dedup      ports.DedupStore
	events     ports.EventPublisher
	emails     ports.EmailPublisher
	classifier *freight.Classifier
	validator  *freight.Validator
	log        zerolog.Logger
}

// NewIntakeService returns an IntakeService implementation. events and emails
// may be nil in tests; publishing is then skipped.
func NewIntakeService(
	loads ports.LoadRepository,
	dedup ports.DedupStore,
	events ports.EventPublisher,
	emails ports.EmailPublisher,
	thresholds freight.Thresholds,
	log zerolog.Logger,
) ports.IntakeService {
	return &intakeService{
		loads:      loads,
		dedup:      dedup,
		events:     events,
		emails:     emails,
		classifier: freight.NewClassifier(thresholds),
		validator:  freight.NewValidator(thresholds),
		log:        log,
	}
}

// ProcessEmail routes one inbound email through deduplication, intent
// classification, and either load creation or the missing-info merge flow.
func (s *intakeService) ProcessEmail(ctx context.Context, in ports.InboundEmailInput) (*ports.IntakeResult, error) {
	isDup, err := s.dedup.IsDuplicate(ctx, in.MessageID)
	if err != nil {
		s.log.Warn().Err(err).Str("message_id", in.MessageID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("message_id", in.MessageID).Msg("duplicate email skipped")
		return &ports.IntakeResult{Action: ports.IntakeActionDuplicate}, nil
	}

	// An open clarification thread means the email is an answer to our
	// question, whatever its wording.
	var openLoad *domain.Load
	if in.ThreadID != "" {
		if l, err := s.loads.FindIncompleteByThread(ctx, in.ThreadID); err == nil {
			openLoad = l
		} else if !errors.Is(err, domain.ErrLoadNotFound) {
			return nil, fmt.Errorf("process email: thread lookup: %w", err)
		}
	}

	classification := intent.Classify(in.Subject, in.Body, openLoad != nil)

	var result *ports.IntakeResult
	switch classification.Intent {
	case intent.LoadTender:
		result, err = s.createFromTender(ctx, in)
	case intent.MissingInfoResponse:
		result, err = s.mergeReply(ctx, in, openLoad)
	default:
		s.log.Info().
			Str("message_id", in.MessageID).
			Str("intent", string(classification.Intent)).
			Float64("confidence", classification.Confidence).
			Msg("email not actionable by intake")
		result = &ports.IntakeResult{Action: ports.IntakeActionSkipped}
	}
	if err != nil {
		return nil, err
	}
	result.Intent = classification.Intent

	if markErr := s.dedup.Mark(ctx, in.MessageID); markErr != nil {
		s.log.Warn().Err(markErr).Str("message_id", in.MessageID).Msg("failed to set dedup key")
	}
	return result, nil
}

// createFromTender builds a new load from an extracted tender, classifies and
// validates it, and either marks it quotable or opens a clarification round.
func (s *intakeService) createFromTender(ctx context.Context, in ports.InboundEmailInput) (*ports.IntakeResult, error) {
	now := time.Now().UTC()
	freightType := s.classifier.Identify(in.Extracted)
	validation := s.validator.Validate(in.Extracted, freightType)

	load := &domain.Load{
		ID:              uuid.NewString(),
		LoadNumber:      generateLoadNumber(),
		ShipperEmail:    in.From,
		ThreadID:        in.ThreadID,
		FreightType:     freightType,
		Data:            in.Extracted,
		MissingFields:   validation.MissingFields,
		Warnings:        validation.Warnings,
		IsComplete:      validation.IsValid,
		LatestMessageID: in.MessageID,
		CreatedAt:       now,
		UpdatedAt:       now,
		Conversation: []domain.ConversationEntry{{
			Timestamp: now,
			Direction: "inbound",
			MessageID: in.MessageID,
			Kind:      "tender",
		}},
	}

	action := ports.IntakeActionCreated
	if validation.IsValid {
		load.Status = domain.StatusReadyToQuote
	} else {
		load.Status = domain.StatusAwaitingInfo
		load.FollowUpCount = 1
		action = ports.IntakeActionClarification
	}

	if err := s.loads.Create(ctx, load); err != nil {
		s.log.Error().Err(err).Str("message_id", in.MessageID).Msg("failed to create load")
		return nil, err
	}

	s.publishEvent(ctx, eventLoadCreated, load)
	if validation.IsValid {
		s.publishEvent(ctx, eventLoadReadyToQuote, load)
	} else {
		s.requestClarification(ctx, load)
	}

	s.log.Info().
		Str("load_number", load.LoadNumber).
		Str("freight_type", string(freightType)).
		Bool("complete", validation.IsValid).
		Strs("missing", validation.MissingFields).
		Msg("load created from tender")

	return intakeResult(action, load), nil
}

// mergeReply folds a shipper's follow-up into the open load and re-validates.
// openLoad is the thread match when one exists; otherwise the most recent
// incomplete load from the sender is used.
func (s *intakeService) mergeReply(ctx context.Context, in ports.InboundEmailInput, openLoad *domain.Load) (*ports.IntakeResult, error) {
	load := openLoad
	if load == nil {
		var err error
		load, err = s.loads.FindIncompleteByShipper(ctx, in.From)
		if errors.Is(err, domain.ErrLoadNotFound) {
			s.log.Info().Str("from", in.From).Msg("missing-info reply with no open load")
			return &ports.IntakeResult{Action: ports.IntakeActionUnmatched}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("merge reply: shipper lookup: %w", err)
		}
	}

	now := time.Now().UTC()
	provided := freight.Merge(&load.Data, in.Extracted)

	// New fields can change the picture entirely, e.g. a temperature range
	// turns a dry van tender into a reefer with its own requirements.
	load.FreightType = s.classifier.Identify(load.Data)
	validation := s.validator.Validate(load.Data, load.FreightType)
	load.MissingFields = validation.MissingFields
	load.Warnings = validation.Warnings
	load.IsComplete = validation.IsValid
	load.LatestMessageID = in.MessageID
	load.UpdatedAt = now
	load.Conversation = append(load.Conversation, domain.ConversationEntry{
		Timestamp: now,
		Direction: "inbound",
		MessageID: in.MessageID,
		Kind:      "missing_info_provided",
		Fields:    provided,
	})

	action := ports.IntakeActionCompleted
	if validation.IsValid {
		if load.Status.CanTransitionTo(domain.StatusReadyToQuote) {
			load.Status = domain.StatusReadyToQuote
		}
	} else {
		load.Status = domain.StatusAwaitingInfo
		load.FollowUpCount++
		action = ports.IntakeActionClarification
	}

	if err := s.loads.Update(ctx, load); err != nil {
		s.log.Error().Err(err).Str("load_number", load.LoadNumber).Msg("failed to update load")
		return nil, err
	}

	if validation.IsValid {
		s.publishEvent(ctx, eventLoadReadyToQuote, load)
	} else {
		s.requestClarification(ctx, load)
	}

	s.log.Info().
		Str("load_number", load.LoadNumber).
		Strs("provided", provided).
		Strs("still_missing", validation.MissingFields).
		Int("follow_up_count", load.FollowUpCount).
		Msg("missing-info reply merged")

	return intakeResult(action, load), nil
}

// requestClarification renders and enqueues the missing-info email. Failure
// to enqueue is logged but does not fail intake; the load stays in
// awaiting_info and the dashboard surfaces it.
func (s *intakeService) requestClarification(ctx context.Context, load *domain.Load) {
	if s.emails == nil {
		return
	}
	email := ComposeClarificationEmail(load)
	if err := s.emails.PublishEmail(ctx, email); err != nil {
		s.log.Error().Err(err).Str("load_number", load.LoadNumber).Msg("failed to enqueue clarification email")
		return
	}
	load.Conversation = append(load.Conversation, domain.ConversationEntry{
		Timestamp: time.Now().UTC(),
		Direction: "outbound",
		Kind:      "clarification_request",
		Fields:    load.MissingFields,
	})
	// Conversation entry for the outbound mail is best-effort.
	if err := s.loads.Update(ctx, load); err != nil {
		s.log.Warn().Err(err).Str("load_number", load.LoadNumber).Msg("failed to record clarification in conversation")
	}
}

func (s *intakeService) publishEvent(ctx context.Context, key string, load *domain.Load) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, load); err != nil {
		s.log.Warn().Err(err).Str("event", key).Str("load_number", load.LoadNumber).Msg("event publish failed")
	}
}

func intakeResult(action string, load *domain.Load) *ports.IntakeResult {
	return &ports.IntakeResult{
		Action:        action,
		LoadID:        load.ID,
		LoadNumber:    load.LoadNumber,
		FreightType:   load.FreightType,
		MissingFields: load.MissingFields,
		Warnings:      load.Warnings,
	}
}

// generateLoadNumber returns a unique load number in the format LD-XXXXXXXX.
func generateLoadNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("LD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("LD-%08X", b)
}
