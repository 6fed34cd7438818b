package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type LoadService struct {
	repo       ports.LoadRepository
	classifier *freight.Classifier
	validator  *freight.Validator
	logger     zerolog.Logger
}

func NewLoadService(repo ports.LoadRepository, thresholds freight.Thresholds, logger zerolog.Logger) *LoadService {
	return &LoadService{
		repo:       repo,
		classifier: freight.NewClassifier(thresholds),
		validator:  freight.NewValidator(thresholds),
		logger:     logger,
	}
}

// CreateLoad creates a load from a dashboard submission. Unlike the email
// path there is no thread or dedup concern; classification and validation
// behave identically.
func (s *LoadService) CreateLoad(ctx context.Context, input ports.CreateLoadInput) (*ports.LoadResult, error) {
	now := time.Now().UTC()
	freightType := s.classifier.Identify(input.Data)
	validation := s.validator.Validate(input.Data, freightType)

	load := &domain.Load{
		ID:            uuid.NewString(),
		LoadNumber:    generateLoadNumber(),
		ShipperEmail:  input.ShipperEmail,
		ThreadID:      input.ThreadID,
		FreightType:   freightType,
		Data:          input.Data,
		MissingFields: validation.MissingFields,
		Warnings:      validation.Warnings,
		IsComplete:    validation.IsValid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if validation.IsValid {
		load.Status = domain.StatusReadyToQuote
	} else {
		load.Status = domain.StatusAwaitingInfo
	}

	if err := s.repo.Create(ctx, load); err != nil {
		s.logger.Error().Err(err).Msg("failed to create load")
		return nil, err
	}

	s.logger.Info().
		Str("load_number", load.LoadNumber).
		Str("freight_type", string(freightType)).
		Bool("complete", validation.IsValid).
		Msg("load created")

	return &ports.LoadResult{
		LoadID:        load.ID,
		LoadNumber:    load.LoadNumber,
		Status:        string(load.Status),
		FreightType:   freightType,
		IsComplete:    validation.IsValid,
		MissingFields: validation.MissingFields,
		Warnings:      validation.Warnings,
	}, nil
}

// GetLoad retrieves a load by load number, enforcing broker scoping: the
// broker role sees its own loads and unassigned ones, admins see everything.
func (s *LoadService) GetLoad(ctx context.Context, input ports.GetLoadInput) (*domain.Load, error) {
	load, err := s.repo.FindByLoadNumber(ctx, input.LoadNumber)
	if err != nil {
		return nil, err
	}
	if input.Role == domain.RoleBroker && load.BrokerID != "" && load.BrokerID != input.BrokerID {
		return nil, domain.ErrForbidden
	}
	return load, nil
}

// ListLoads returns a filtered, paginated page of loads.
func (s *LoadService) ListLoads(ctx context.Context, input ports.ListLoadsInput) (*ports.ListLoadsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListLoadsFilter{
		Status:      input.Status,
		FreightType: input.FreightType,
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	}
	if input.Role == domain.RoleBroker {
		filter.BrokerID = input.BrokerID
	}
	if input.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", input.DateFrom); err == nil {
			filter.DateFrom = t
		}
	}
	if input.DateTo != "" {
		if t, err := time.Parse("2006-01-02", input.DateTo); err == nil {
			// Inclusive end of day.
			filter.DateTo = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list loads")
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return &ports.ListLoadsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
