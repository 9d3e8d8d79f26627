package engine

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/testutil"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealPrep(freq domain.Frequency) *domain.Activity {
	return &domain.Activity{
		ID:              1,
		Name:            "Meal prep",
		DurationMinutes: 60,
		Frequency:       freq,
		DirectCostCents: 1000,
		SavedMinutes:    120,
		Currency:        "USD",
		CategoryID:      testutil.Int32Ptr(2),
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestComputeActivities_SnapshotROI(t *testing.T) {
	cc := usdContext(50)
	months := util.MonthRange("2024-01", "2024-02")

	flow, err := newTestEngine().computeActivities(context.Background(), newTestNormalizer(cc), months, []*domain.Activity{mealPrep(domain.FrequencyWeekly)})

	require.NoError(t, err)
	require.Len(t, flow.ROI, 1)
	roi := flow.ROI[0]
	assert.InDelta(t, 1.0, roi.TimeCostHours, 1e-9)
	assert.InDelta(t, 2.0, roi.BenefitHours, 1e-9)
	require.NotNil(t, roi.MoneyCostHours)
	require.NotNil(t, roi.TotalCostHours)
	require.NotNil(t, roi.ROI)
	require.NotNil(t, roi.NetPerOccurrence)
	assert.InDelta(t, 0.2, *roi.MoneyCostHours, 1e-9)
	assert.InDelta(t, 1.2, *roi.TotalCostHours, 1e-9)
	assert.InDelta(t, 2.0/1.2, *roi.ROI, 1e-9)
	assert.InDelta(t, 0.8, *roi.NetPerOccurrence, 1e-9)
}

func TestComputeActivities_RecurringSeries(t *testing.T) {
	cc := usdContext(50)
	months := util.MonthRange("2024-01", "2024-02")

	flow, err := newTestEngine().computeActivities(context.Background(), newTestNormalizer(cc), months, []*domain.Activity{mealPrep(domain.FrequencyWeekly)})

	require.NoError(t, err)
	k := WeeksPerMonth
	for _, m := range months {
		assert.InDelta(t, 2*k, flow.SavedHours[m], 1e-9)
		assert.InDelta(t, 0.0, hoursAt(t, flow.ExtraHours, m), 1e-9)
		assert.InDelta(t, 0.8*k, hoursAt(t, flow.NetHours, m), 1e-9)
		assert.InDelta(t, 2*k, flow.CategorySaved[2][m], 1e-9)
	}
}

func TestComputeActivities_CostlyActivityBooksExtraHours(t *testing.T) {
	cc := usdContext(50)
	activity := mealPrep(domain.FrequencyMonthly)
	activity.DirectCostCents = 10000 // 2h of money
	months := []string{"2024-01"}

	flow, err := newTestEngine().computeActivities(context.Background(), newTestNormalizer(cc), months, []*domain.Activity{activity})

	require.NoError(t, err)
	assert.InDelta(t, 2.0, flow.SavedHours["2024-01"], 1e-9)
	assert.InDelta(t, 1.0, hoursAt(t, flow.ExtraHours, "2024-01"), 1e-9)
	assert.InDelta(t, -1.0, hoursAt(t, flow.NetHours, "2024-01"), 1e-9)
	assert.InDelta(t, 1.0, hoursAt(t, flow.CategoryExtra[2], "2024-01"), 1e-9)
}

func TestComputeActivities_OneTimePostsInCurrentMonth(t *testing.T) {
	cc := usdContext(50)
	cc.Now = fixedNow(time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC))
	months := util.MonthRange("2024-01", "2024-03")

	flow, err := newTestEngine().computeActivities(context.Background(), newTestNormalizer(cc), months, []*domain.Activity{mealPrep(domain.FrequencyOnce)})

	require.NoError(t, err)
	assert.InDelta(t, 0.0, flow.SavedHours["2024-01"], 1e-9)
	assert.InDelta(t, 2.0, flow.SavedHours["2024-02"], 1e-9)
	assert.InDelta(t, 0.8, hoursAt(t, flow.NetHours, "2024-02"), 1e-9)
	assert.InDelta(t, 0.0, hoursAt(t, flow.NetHours, "2024-01"), 1e-9)
	assert.InDelta(t, 0.0, flow.SavedHours["2024-03"], 1e-9)
}

func TestComputeActivities_OneTimeOutsideRange(t *testing.T) {
	cc := usdContext(50)
	cc.Now = fixedNow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	months := util.MonthRange("2024-01", "2024-03")

	flow, err := newTestEngine().computeActivities(context.Background(), newTestNormalizer(cc), months, []*domain.Activity{mealPrep(domain.FrequencyOnce)})

	require.NoError(t, err)
	for _, m := range months {
		assert.InDelta(t, 0.0, flow.SavedHours[m], 1e-9)
	}
}

func TestComputeActivities_NoHourlyRateLeavesCostUnvalued(t *testing.T) {
	cc := &ConversionContext{UserCurrency: "USD", Rates: parityRates}
	cc.Now = fixedNow(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	months := []string{"2024-01", "2024-02"}

	tests := []struct {
		name string
		freq domain.Frequency
	}{
		{"recurring", domain.FrequencyWeekly},
		{"one time", domain.FrequencyOnce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, err := newTestEngine().computeActivities(context.Background(), newTestNormalizer(cc), months, []*domain.Activity{mealPrep(tt.freq)})

			require.NoError(t, err)
			assert.Nil(t, flow.ROI[0].ROI)
			assert.Nil(t, flow.ROI[0].TotalCostHours)
			assert.Greater(t, flow.SavedHours["2024-01"], 0.0)
			assert.Greater(t, flow.CategorySaved[2]["2024-01"], 0.0)
			for _, m := range months {
				assert.Contains(t, flow.ExtraHours, m)
				assert.Nil(t, flow.ExtraHours[m])
				assert.Nil(t, flow.NetHours[m])
				assert.Contains(t, flow.CategoryExtra[2], m)
				assert.Nil(t, flow.CategoryExtra[2][m])
			}
		})
	}
}

func TestComputeActivities_RateChangeValuesLaterMonthsOnly(t *testing.T) {
	cc := &ConversionContext{UserCurrency: "USD", Rates: parityRates}
	cc.HourlyRateForMonth = func(month string) *float64 {
		if month >= "2024-02" {
			return domain.Float(50)
		}
		return nil
	}
	months := []string{"2024-01", "2024-02"}

	flow, err := newTestEngine().computeActivities(context.Background(), newTestNormalizer(cc), months, []*domain.Activity{mealPrep(domain.FrequencyMonthly)})

	require.NoError(t, err)
	assert.Nil(t, flow.ExtraHours["2024-01"])
	assert.Nil(t, flow.NetHours["2024-01"])
	assert.Nil(t, flow.CategoryExtra[2]["2024-01"])
	assert.InDelta(t, 0.0, hoursAt(t, flow.ExtraHours, "2024-02"), 1e-9)
	assert.InDelta(t, 0.8, hoursAt(t, flow.NetHours, "2024-02"), 1e-9)
	assert.InDelta(t, 2.0, flow.SavedHours["2024-01"], 1e-9)
}
