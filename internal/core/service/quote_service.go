package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/ports"
	"github.com/jake-esse/ai-broker/internal/core/pricing"
)

type quoteService struct {
	loads   ports.LoadRepository
	quotes  ports.QuoteRepository
	engine  *pricing.Engine
	emails  ports.EmailPublisher
	validFor time.Duration
	log     zerolog.Logger
}

// NewQuoteService returns a QuoteService. The pricing engine reads historical
// lane rates through the quote repository; emails may be nil to skip sending.
func NewQuoteService(
	loads ports.LoadRepository,
	quotes ports.QuoteRepository,
	cfg pricing.Config,
	emails ports.EmailPublisher,
	log zerolog.Logger,
) ports.QuoteService {
	return &quoteService{
		loads:    loads,
		quotes:   quotes,
		engine:   pricing.NewEngine(cfg, quotes),
		emails:   emails,
		validFor: cfg.QuoteValidity,
		log:      log,
	}
}

// GenerateQuote prices a ready load, persists the quote, transitions the load
// to quoted, and enqueues the quote email.
func (s *quoteService) GenerateQuote(ctx context.Context, loadNumber string) (*domain.Quote, error) {
	load, err := s.loads.FindByLoadNumber(ctx, loadNumber)
	if err != nil {
		return nil, fmt.Errorf("generate quote: %w", err)
	}
	if load.Status != domain.StatusReadyToQuote {
		return nil, fmt.Errorf("generate quote: %w (status %s)", domain.ErrLoadNotQuotable, load.Status)
	}

	pickup, _ := time.Parse("2006-01-02", load.Data.PickupDate)
	result := s.engine.Price(ctx, pricing.Input{
		OriginCity:  load.Data.PickupCity,
		OriginState: load.Data.PickupState,
		DestCity:    load.Data.DeliveryCity,
		DestState:   load.Data.DeliveryState,
		Equipment:   load.Data.EquipmentType,
		WeightLb:    weightOrZero(load),
		PickupDate:  pickup,
	})

	now := time.Now().UTC()
	validFor := s.validFor
	if validFor <= 0 {
		validFor = 24 * time.Hour
	}
	quote := &domain.Quote{
		ID:              uuid.NewString(),
		LoadID:          load.ID,
		LoadNumber:      load.LoadNumber,
		Status:          domain.QuotePending,
		TotalMiles:      result.TotalMiles,
		BaseRatePerMile: result.BaseRatePerMile,
		LinehaulRate:    result.LinehaulRate,
		FuelSurcharge:   result.FuelSurcharge,
		Accessorials:    result.Accessorials,
		CarrierRate:     result.CarrierRate,
		RatePerMile:     result.RatePerMile,
		MarginPct:       result.MarginPct,
		ShipperRate:     result.ShipperRate,
		MarketCondition: string(result.MarketCondition),
		Confidence:      result.Confidence,
		Notes:           result.Notes,
		CreatedAt:       now,
		ExpiresAt:       now.Add(validFor),
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		s.log.Error().Err(err).Str("load_number", loadNumber).Msg("failed to persist quote")
		return nil, err
	}

	if load.Status.CanTransitionTo(domain.StatusQuoted) {
		load.Status = domain.StatusQuoted
		load.UpdatedAt = now
		if err := s.loads.Update(ctx, load); err != nil {
			s.log.Warn().Err(err).Str("load_number", loadNumber).Msg("failed to mark load quoted")
		}
	}

	if s.emails != nil {
		quote.Status = domain.QuoteSent
		email := ComposeQuoteEmail(load, quote)
		if err := s.emails.PublishEmail(ctx, email); err != nil {
			s.log.Error().Err(err).Str("load_number", loadNumber).Msg("failed to enqueue quote email")
			quote.Status = domain.QuotePending
		} else if err := s.quotes.UpdateStatus(ctx, quote.ID, domain.QuoteSent); err != nil {
			s.log.Warn().Err(err).Str("quote_id", quote.ID).Msg("failed to mark quote sent")
		}
	}

	s.log.Info().
		Str("load_number", loadNumber).
		Str("quote_id", quote.ID).
		Float64("shipper_rate", quote.ShipperRate).
		Float64("confidence", quote.Confidence).
		Msg("quote generated")

	return quote, nil
}

func (s *quoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	return s.quotes.FindByID(ctx, id)
}

func weightOrZero(load *domain.Load) float64 {
	if load.Data.WeightLb == nil {
		return 0
	}
	return *load.Data.WeightLb
}
