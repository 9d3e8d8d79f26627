package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/engine"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RateQuote is a resolved exchange rate
type RateQuote struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// RateService exposes the process-wide rate resolver and feeds the rate table
type RateService struct {
	rateRepo domain.ExchangeRateRepository
	resolver *engine.RateResolver
}

// NewRateService creates a new RateService
func NewRateService(rateRepo domain.ExchangeRateRepository, resolver *engine.RateResolver) *RateService {
	return &RateService{
		rateRepo: rateRepo,
		resolver: resolver,
	}
}

// GetRate resolves how many units of "to" one unit of "from" buys on date
func (s *RateService) GetRate(ctx context.Context, from, to string, date time.Time) (*RateQuote, error) {
	if err := domain.ValidateCurrency(from); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(to); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	rate, err := s.resolver.Rate(ctx, from, to, date)
	if err != nil {
		return nil, err
	}
	return &RateQuote{
		From: from,
		To:   to,
		Date: date.Format(time.DateOnly),
		Rate: decimal.NewFromFloat(rate),
	}, nil
}

// SaveRate stores one rate table row. Resolved rates already cached keep serving until their TTL expires.
func (s *RateService) SaveRate(ctx context.Context, rate *domain.ExchangeRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	rate.Day = util.DateOnly(rate.Day)
	if err := s.rateRepo.Upsert(ctx, rate); err != nil {
		return fmt.Errorf("save exchange rate: %w", err)
	}
	log.Info().
		Str("base", rate.Base).
		Str("quote", rate.Quote).
		Str("day", rate.Day.Format(time.DateOnly)).
		Msg("Exchange rate saved")
	return nil
}
