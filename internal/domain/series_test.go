package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySeries_AddDropsOutOfRange(t *testing.T) {
	s := NewMonthlySeries([]string{"2024-01", "2024-02"})
	s.Add("2024-01", 5)
	s.Add("2024-01", 2.5)
	s.Add("2023-12", 100)

	assert.Len(t, s, 2)
	assert.Equal(t, 7.5, s["2024-01"])
	assert.Equal(t, 0.0, s["2024-02"])
}

func TestHourSeries_NilPoisonsMonth(t *testing.T) {
	s := NewHourSeries([]string{"2024-01", "2024-02"})
	s.Add("2024-01", Float(2))
	s.Add("2024-01", nil)
	s.Add("2024-01", Float(3))
	s.Add("2024-02", Float(1.5))

	assert.Nil(t, s["2024-01"])
	require.NotNil(t, s["2024-02"])
	assert.Equal(t, 1.5, *s["2024-02"])
	assert.False(t, s.Computable())
}

func TestFrequency_IsPeriodic(t *testing.T) {
	assert.True(t, FrequencyWeekly.IsPeriodic())
	assert.True(t, FrequencyMonthly.IsPeriodic())
	assert.True(t, FrequencyYearly.IsPeriodic())
	assert.False(t, FrequencyOnce.IsPeriodic())
	assert.False(t, FrequencyNone.IsPeriodic())
}
