package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row of the rate table: 1 Base = Rate Quote on Day
type ExchangeRate struct {
	Day   time.Time       `json:"day"`
	Base  string          `json:"base"`
	Quote string          `json:"quote"`
	Rate  decimal.Decimal `json:"rate"`
}

// Validate checks the pair and that the rate is positive
func (r *ExchangeRate) Validate() error {
	if r.Day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	if err := ValidateCurrency(r.Base); err != nil {
		return err
	}
	if err := ValidateCurrency(r.Quote); err != nil {
		return err
	}
	if r.Base == r.Quote {
		return fmt.Errorf("%w: base and quote must differ", ErrInvalidInput)
	}
	if !r.Rate.IsPositive() {
		return fmt.Errorf("%w: rate must be positive", ErrInvalidInput)
	}
	return nil
}

// ExchangeRateRepository lookups return ErrRateNotFound when no row matches
type ExchangeRateRepository interface {
	GetByDay(ctx context.Context, day time.Time, base, quote string) (*ExchangeRate, error)
	GetLatest(ctx context.Context, base, quote string) (*ExchangeRate, error)
	Upsert(ctx context.Context, rate *ExchangeRate) error
}
