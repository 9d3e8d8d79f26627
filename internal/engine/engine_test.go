package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyExpense(cents int64, currency string) *domain.Expense {
	return &domain.Expense{
		ID:          1,
		AmountCents: cents,
		Currency:    currency,
		Frequency:   domain.FrequencyMonthly,
		StartDate:   testutil.Date(2024, 1, 1),
		CategoryID:  testutil.Int32Ptr(2),
	}
}

func TestAggregate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "reversed range",
			req:     Request{From: "2024-05", To: "2024-01", Context: *usdContext(50)},
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "malformed month key",
			req:     Request{From: "2024-13", To: "2024-12", Context: *usdContext(50)},
			wantErr: domain.ErrInvalidMonthKey,
		},
		{
			name:    "range too long",
			req:     Request{From: "2000-01", To: "2024-12", Context: *usdContext(50)},
			wantErr: domain.ErrRangeTooLong,
		},
		{
			name:    "invalid user currency",
			req:     Request{From: "2024-01", To: "2024-03", Context: ConversionContext{UserCurrency: "usd", Rates: parityRates}},
			wantErr: domain.ErrInvalidCurrency,
		},
		{
			name:    "negative forecast months",
			req:     Request{From: "2024-01", To: "2024-03", ForecastMonths: testutil.IntPtr(-1), Context: *usdContext(50)},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing rate function",
			req:     Request{From: "2024-01", To: "2024-03", Context: ConversionContext{UserCurrency: "USD"}},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "invalid row",
			req: Request{From: "2024-01", To: "2024-03", Context: *usdContext(50), Rows: Rows{
				Expenses: []*domain.Expense{monthlyExpense(100, "dollars")},
			}},
			wantErr: domain.ErrInvalidRow,
		},
		{
			name: "nil row",
			req: Request{From: "2024-01", To: "2024-03", Context: *usdContext(50), Rows: Rows{
				Goals: []*domain.Goal{nil},
			}},
			wantErr: domain.ErrInvalidRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestEngine().Aggregate(context.Background(), tt.req)

			assert.Nil(t, report)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAggregate_FullScenario(t *testing.T) {
	asset := dishwasher()
	asset.HoursSavedPerMonth = 5

	req := Request{
		From:    "2024-01",
		To:      "2024-03",
		Context: *usdContext(50),
		Rows: Rows{
			Incomes: []*domain.Income{{
				ID:          1,
				Source:      "salary",
				AmountCents: 500000,
				Currency:    "USD",
				Recurring:   domain.FrequencyMonthly,
				ReceivedAt:  testutil.Date(2024, 1, 25),
			}},
			Expenses: []*domain.Expense{monthlyExpense(10000, "USD")},
			Assets:   []*domain.DurableAsset{asset},
			Goals:    []*domain.Goal{{ID: 1, Name: "Garden", TargetHours: testutil.Float64Ptr(10), Currency: "USD"}},
		},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, report.Months)
	assert.Equal(t, "USD", report.Currency)
	assert.False(t, report.InsufficientData)
	assert.False(t, report.FXDegraded)

	for _, m := range report.Months {
		assert.InDelta(t, 100.0, hoursAt(t, report.Income.Hours, m), 1e-9, m)
		assert.InDelta(t, 3.0, hoursAt(t, report.TimeCostHours, m), 1e-9, m)
		assert.InDelta(t, 5.0, report.TimeSavingsHours[m], 1e-9, m)
		assert.InDelta(t, -2.0, hoursAt(t, report.TimeBurnNet, m), 1e-9, m)
	}
	require.NotNil(t, report.NetSavingsHoursPerMonth)
	assert.InDelta(t, 2.0, *report.NetSavingsHoursPerMonth, 1e-9)

	require.Len(t, report.Goals, 1)
	require.NotNil(t, report.Goals[0].ETAMonths)
	assert.InDelta(t, 5.0, *report.Goals[0].ETAMonths, 1e-9)

	require.NotNil(t, report.Forecast)
	require.NotNil(t, report.Forecast.BreakevenMonth)
	assert.Equal(t, "2024-03", *report.Forecast.BreakevenMonth)
	assert.Len(t, report.Forecast.Points, 3)

	assert.InDelta(t, 2.0, hoursAt(t, report.CategoryCostHours[2], "2024-02"), 1e-9)
	assert.InDelta(t, 1.0, hoursAt(t, report.CategoryCostHours[4], "2024-02"), 1e-9)
	assert.InDelta(t, 5.0, report.CategorySavingsHours[4]["2024-02"], 1e-9)
}

func TestAggregate_ForecastHorizonOverride(t *testing.T) {
	req := Request{
		From:           "2024-01",
		To:             "2024-02",
		ForecastMonths: testutil.IntPtr(5),
		Context:        *usdContext(50),
		Rows:           Rows{Expenses: []*domain.Expense{monthlyExpense(10000, "USD")}},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, report.Forecast)
	assert.Len(t, report.Forecast.Points, 5)
	assert.Nil(t, report.Forecast.BreakevenMonth)
}

func TestAggregate_ZeroForecastMonthsProjectsNothing(t *testing.T) {
	req := Request{
		From:           "2024-01",
		To:             "2024-02",
		ForecastMonths: testutil.IntPtr(0),
		Context:        *usdContext(50),
		Rows:           Rows{Expenses: []*domain.Expense{monthlyExpense(10000, "USD")}},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, report.Forecast)
	assert.Empty(t, report.Forecast.Points)
}

func TestAggregate_WithoutHourlyRate(t *testing.T) {
	req := Request{
		From:    "2024-01",
		To:      "2024-03",
		Context: ConversionContext{UserCurrency: "USD", Rates: parityRates},
		Rows:    Rows{Expenses: []*domain.Expense{monthlyExpense(10000, "USD")}},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, report.InsufficientData)
	assert.Nil(t, report.HourlyRate)
	assert.Nil(t, report.Forecast)
	assert.Nil(t, report.NetSavingsHoursPerMonth)
	assert.Nil(t, report.TimeBurnNet["2024-01"])
	assert.InDelta(t, 100.0, report.Expenses.Money["2024-01"], 1e-9)
}

func TestAggregate_ActivityCategoryWithoutHourlyRate(t *testing.T) {
	activity := mealPrep(domain.FrequencyWeekly)
	activity.CategoryID = testutil.Int32Ptr(7)
	req := Request{
		From:    "2024-01",
		To:      "2024-02",
		Context: ConversionContext{UserCurrency: "USD", Rates: parityRates},
		Rows:    Rows{Activities: []*domain.Activity{activity}},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	require.Contains(t, report.CategoryCostHours, int32(7))
	for _, m := range report.Months {
		assert.Nil(t, report.Activities.ExtraHours[m])
		assert.Nil(t, report.Activities.NetHours[m])
		assert.Nil(t, report.CategoryCostHours[7][m])
		assert.Nil(t, report.TimeCostHours[m])
		assert.Greater(t, report.CategorySavingsHours[7][m], 0.0)
	}
}

func TestAggregate_FlatBurnHasNoBreakeven(t *testing.T) {
	req := Request{
		From:    "2024-01",
		To:      "2024-10",
		Context: *usdContext(50),
		Rows:    Rows{Expenses: []*domain.Expense{monthlyExpense(61700, "USD")}},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	for _, m := range report.Months {
		assert.InDelta(t, 12.34, hoursAt(t, report.TimeBurnNet, m), 1e-9)
	}
	require.NotNil(t, report.Forecast)
	assert.Nil(t, report.Forecast.BreakevenMonth)
	assert.InDelta(t, 0.0, report.Forecast.Slope, 1e-9)
}

func TestAggregate_RateChangeMidRange(t *testing.T) {
	cc := *usdContext(50)
	cc.HourlyRateForMonth = func(month string) *float64 {
		if month >= "2024-03" {
			return domain.Float(100)
		}
		return nil
	}
	req := Request{
		From:    "2024-01",
		To:      "2024-03",
		Context: cc,
		Rows:    Rows{Expenses: []*domain.Expense{monthlyExpense(10000, "USD")}},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	assert.InDelta(t, 2.0, hoursAt(t, report.Expenses.Hours, "2024-02"), 1e-9)
	assert.InDelta(t, 1.0, hoursAt(t, report.Expenses.Hours, "2024-03"), 1e-9)
}

func TestAggregate_FXDegraded(t *testing.T) {
	cc := *usdContext(50)
	cc.Rates = func(ctx context.Context, from, to string, date time.Time) (float64, error) {
		return 0, errors.New("rate source offline")
	}
	req := Request{
		From:    "2024-01",
		To:      "2024-02",
		Context: cc,
		Rows:    Rows{Expenses: []*domain.Expense{monthlyExpense(10000, "EUR")}},
	}

	report, err := newTestEngine().Aggregate(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, report.FXDegraded)
	assert.Equal(t, []string{"EUR:USD:2024-01", "EUR:USD:2024-02"}, report.DegradedConversions)
	assert.InDelta(t, 100.0, report.Expenses.Money["2024-01"], 1e-9)
}

func TestAggregate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := Request{
		From:    "2024-01",
		To:      "2024-02",
		Context: *usdContext(50),
		Rows:    Rows{Expenses: []*domain.Expense{monthlyExpense(10000, "USD")}},
	}

	_, err := newTestEngine().Aggregate(ctx, req)

	assert.ErrorIs(t, err, context.Canceled)
}
