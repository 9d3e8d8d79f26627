package domain

// Frequency is the recurrence of an income, expense or activity.
// Once and None are non-periodic and never go through the monthly factor.
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyOnce    Frequency = "once"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsPeriodic reports whether the frequency repeats
func (f Frequency) IsPeriodic() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// validFor checks f against the enum a row kind accepts. Incomes use none, everything else once.
func (f Frequency) validFor(oneShot Frequency) bool {
	return f == oneShot || f.IsPeriodic()
}
