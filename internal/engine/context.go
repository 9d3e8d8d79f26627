package engine

import (
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
)

// ImpliedSalary adds the user's own working time as a monthly income
type ImpliedSalary struct {
	Enabled      bool
	HoursPerWeek float64
}

// ConversionContext carries everything a run values money and time with.
// It is built by the caller per run and not modified by the engine.
type ConversionContext struct {
	UserCurrency string
	HourlyRate   *float64

	// HourlyRateForMonth overrides HourlyRate for a month when it returns non-nil
	HourlyRateForMonth func(month string) *float64

	Rates RateFunc

	OneTimeAmortizationMonths int
	CapexAmortizationMonths   int
	ImpliedSalary             ImpliedSalary

	// Now defaults to time.Now
	Now func() time.Time
}

func (c *ConversionContext) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// hourlyRate returns the context rate when it is positive
func (c *ConversionContext) hourlyRate() *float64 {
	return positive(c.HourlyRate)
}

func (c *ConversionContext) hourlyRateFor(month string) *float64 {
	if c.HourlyRateForMonth != nil {
		if rate := c.HourlyRateForMonth(month); rate != nil {
			return positive(rate)
		}
	}
	return c.hourlyRate()
}

// MoneyToHours converts a user-currency amount to hours at the context rate.
// It returns nil when there is no positive hourly rate.
func (c *ConversionContext) MoneyToHours(amount float64) *float64 {
	rate := c.hourlyRate()
	if rate == nil {
		return nil
	}
	return domain.Float(amount / *rate)
}

// MoneyToHoursForMonth converts at the rate in force for month
func (c *ConversionContext) MoneyToHoursForMonth(amount float64, month string) *float64 {
	rate := c.hourlyRateFor(month)
	if rate == nil {
		return nil
	}
	return domain.Float(amount / *rate)
}

// newHourSeries seeds months without an hourly rate as not computable
func (c *ConversionContext) newHourSeries(months []string) domain.HourSeries {
	s := domain.NewHourSeries(months)
	for _, m := range months {
		if c.hourlyRateFor(m) == nil {
			s[m] = nil
		}
	}
	return s
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}
