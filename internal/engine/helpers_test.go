package engine

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return New(zerolog.Nop(), Config{Concurrency: 4, ForecastMonths: 3})
}

func parityRates(ctx context.Context, from, to string, date time.Time) (float64, error) {
	return 1, nil
}

func usdContext(hourlyRate float64) *ConversionContext {
	return &ConversionContext{
		UserCurrency: "USD",
		HourlyRate:   &hourlyRate,
		Rates:        parityRates,
	}
}

func newTestNormalizer(cc *ConversionContext) *Normalizer {
	return NewNormalizer(cc, zerolog.Nop())
}

// hoursAt fails the test when the month is not computable
func hoursAt(t *testing.T, s domain.HourSeries, month string) float64 {
	t.Helper()
	v, ok := s[month]
	require.True(t, ok, "month %s missing", month)
	require.NotNil(t, v, "month %s not computable", month)
	return *v
}
