package domain

// MonthlySeries maps month keys to amounts. Every month of a computed range has an entry.
type MonthlySeries map[string]float64

// NewMonthlySeries seeds every month with zero
func NewMonthlySeries(months []string) MonthlySeries {
	s := make(MonthlySeries, len(months))
	for _, m := range months {
		s[m] = 0
	}
	return s
}

// Add accumulates v into month. Months outside the seeded range are dropped.
func (s MonthlySeries) Add(month string, v float64) {
	if cur, ok := s[month]; ok {
		s[month] = cur + v
	}
}

// HourSeries maps month keys to hours. A nil entry means the month cannot be valued in hours
// and stays nil whatever is added to it.
type HourSeries map[string]*float64

// NewHourSeries seeds every month with zero
func NewHourSeries(months []string) HourSeries {
	s := make(HourSeries, len(months))
	for _, m := range months {
		s[m] = Float(0)
	}
	return s
}

// Add accumulates v into month; a nil v poisons the month
func (s HourSeries) Add(month string, v *float64) {
	cur, ok := s[month]
	if !ok || cur == nil {
		return
	}
	if v == nil {
		s[month] = nil
		return
	}
	s[month] = Float(*cur + *v)
}

// Computable reports whether every month has a value
func (s HourSeries) Computable() bool {
	for _, v := range s {
		if v == nil {
			return false
		}
	}
	return true
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}
