package engine

import (
	"context"
	"testing"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/testutil"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dishwasher() *domain.DurableAsset {
	return &domain.DurableAsset{
		ID:                       1,
		Name:                     "Dishwasher",
		PriceCents:               120000,
		Currency:                 "USD",
		PurchaseDate:             testutil.Date(2024, 1, 1),
		ExpectedLifeMonths:       12,
		MaintenanceCentsPerMonth: 5000,
		HoursSavedPerMonth:       3,
		CategoryID:               testutil.Int32Ptr(4),
	}
}

func TestAssetMetrics(t *testing.T) {
	n := newTestNormalizer(usdContext(50))

	m := assetMetrics(context.Background(), n, dishwasher())

	require.NotNil(t, m.CapexHours)
	require.NotNil(t, m.MaintHoursPerMonth)
	require.NotNil(t, m.NetHoursPerMonth)
	require.NotNil(t, m.PaybackMonths)
	require.NotNil(t, m.LifetimeROIHours)
	assert.InDelta(t, 24.0, *m.CapexHours, 1e-9)
	assert.InDelta(t, 1.0, *m.MaintHoursPerMonth, 1e-9)
	assert.InDelta(t, 2.0, *m.NetHoursPerMonth, 1e-9)
	assert.InDelta(t, 12.0, *m.PaybackMonths, 1e-9)
	assert.InDelta(t, 0.0, *m.LifetimeROIHours, 1e-9)
}

func TestAssetMetrics_NoPaybackWhenNetIsNotPositive(t *testing.T) {
	asset := dishwasher()
	asset.HoursSavedPerMonth = 1
	n := newTestNormalizer(usdContext(50))

	m := assetMetrics(context.Background(), n, asset)

	require.NotNil(t, m.NetHoursPerMonth)
	assert.InDelta(t, 0.0, *m.NetHoursPerMonth, 1e-9)
	assert.Nil(t, m.PaybackMonths)
	require.NotNil(t, m.LifetimeROIHours)
	assert.InDelta(t, -24.0, *m.LifetimeROIHours, 1e-9)
}

func TestAssetMetrics_NoHourlyRate(t *testing.T) {
	n := newTestNormalizer(&ConversionContext{UserCurrency: "USD", Rates: parityRates})

	m := assetMetrics(context.Background(), n, dishwasher())

	assert.Nil(t, m.CapexHours)
	assert.Nil(t, m.MaintHoursPerMonth)
	assert.Nil(t, m.NetHoursPerMonth)
	assert.Nil(t, m.PaybackMonths)
	assert.Nil(t, m.LifetimeROIHours)
}

func TestComputeAssets_CalendarSeries(t *testing.T) {
	cc := usdContext(50)
	cc.CapexAmortizationMonths = 6
	months := util.MonthRange("2023-12", "2025-02")

	flow, err := newTestEngine().computeAssets(context.Background(), newTestNormalizer(cc), months, []*domain.DurableAsset{dishwasher()})

	require.NoError(t, err)
	require.Len(t, flow.Metrics, 1)

	for _, m := range util.MonthRange("2024-01", "2024-06") {
		assert.InDelta(t, 4.0, hoursAt(t, flow.CapexAmortHours, m), 1e-9, m)
	}
	for _, m := range append([]string{"2023-12"}, util.MonthRange("2024-07", "2025-02")...) {
		assert.InDelta(t, 0.0, hoursAt(t, flow.CapexAmortHours, m), 1e-9, m)
	}

	for _, m := range util.MonthRange("2024-01", "2024-12") {
		assert.InDelta(t, 3.0, flow.SavedHours[m], 1e-9, m)
		assert.InDelta(t, 1.0, hoursAt(t, flow.MaintHours, m), 1e-9, m)
		assert.InDelta(t, 50.0, flow.MaintMoney[m], 1e-9, m)
	}
	for _, m := range []string{"2023-12", "2025-01", "2025-02"} {
		assert.InDelta(t, 0.0, flow.SavedHours[m], 1e-9, m)
		assert.InDelta(t, 0.0, hoursAt(t, flow.MaintHours, m), 1e-9, m)
	}

	assert.InDelta(t, 3.0, flow.CategorySaved[4]["2024-05"], 1e-9)
	assert.InDelta(t, 1.0, hoursAt(t, flow.CategoryCost[4], "2024-05"), 1e-9)
}
