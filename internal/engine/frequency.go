package engine

import "github.com/dafibh/fortuna/timevalue-backend/internal/domain"

// WeeksPerYear approximates 365.25 / 7. WeeksPerMonth is the only place weeks are turned into months.
const (
	WeeksPerYear  = 52.1429
	WeeksPerMonth = WeeksPerYear / 12
)

// FreqToMonthly returns how many times per average month a frequency occurs.
// Non-periodic frequencies return 0.
func FreqToMonthly(f domain.Frequency) float64 {
	switch f {
	case domain.FrequencyWeekly:
		return WeeksPerMonth
	case domain.FrequencyMonthly:
		return 1
	case domain.FrequencyYearly:
		return 1.0 / 12
	default:
		return 0
	}
}
