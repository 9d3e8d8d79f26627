package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/engine"
	"github.com/dafibh/fortuna/timevalue-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateService(repo *testutil.MockExchangeRateRepository) *RateService {
	return NewRateService(repo, engine.NewRateResolver(repo, zerolog.Nop(), engine.DefaultRateResolverConfig()))
}

func TestGetRate_Triangulated(t *testing.T) {
	repo := testutil.NewMockExchangeRateRepository()
	day := testutil.Date(2024, 3, 4)
	repo.AddRate(day, "USD", "EUR", 0.8)
	repo.AddRate(day, "USD", "GBP", 0.5)

	quote, err := newRateService(repo).GetRate(context.Background(), "EUR", "GBP", day)

	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", quote.Date)
	assert.InDelta(t, 0.625, quote.Rate.InexactFloat64(), 1e-9)
}

func TestGetRate_Errors(t *testing.T) {
	svc := newRateService(testutil.NewMockExchangeRateRepository())
	day := testutil.Date(2024, 3, 4)

	tests := []struct {
		name    string
		from    string
		to      string
		date    time.Time
		wantErr error
	}{
		{"invalid from", "eur", "USD", day, domain.ErrInvalidCurrency},
		{"invalid to", "EUR", "US", day, domain.ErrInvalidCurrency},
		{"missing date", "EUR", "USD", time.Time{}, domain.ErrInvalidInput},
		{"unknown pair", "EUR", "JPY", day, domain.ErrRateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetRate(context.Background(), tt.from, tt.to, tt.date)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSaveRate(t *testing.T) {
	repo := testutil.NewMockExchangeRateRepository()
	svc := newRateService(repo)
	day := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)

	err := svc.SaveRate(context.Background(), &domain.ExchangeRate{
		Day:   day,
		Base:  "USD",
		Quote: "EUR",
		Rate:  decimal.RequireFromString("0.91"),
	})
	require.NoError(t, err)

	quote, err := svc.GetRate(context.Background(), "EUR", "USD", testutil.Date(2024, 3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 1/0.91, quote.Rate.InexactFloat64(), 1e-9)
}

func TestSaveRate_Invalid(t *testing.T) {
	repo := testutil.NewMockExchangeRateRepository()
	svc := newRateService(repo)
	day := testutil.Date(2024, 3, 4)

	tests := []struct {
		name    string
		rate    domain.ExchangeRate
		wantErr error
	}{
		{"missing day", domain.ExchangeRate{Base: "USD", Quote: "EUR", Rate: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"bad base", domain.ExchangeRate{Day: day, Base: "usd", Quote: "EUR", Rate: decimal.NewFromInt(1)}, domain.ErrInvalidCurrency},
		{"same pair", domain.ExchangeRate{Day: day, Base: "USD", Quote: "USD", Rate: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"zero rate", domain.ExchangeRate{Day: day, Base: "USD", Quote: "EUR"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.SaveRate(context.Background(), &tt.rate)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, repo.Rates)
}
