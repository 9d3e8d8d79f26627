package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserNotFound     = errors.New("user not found")
	ErrProfileNotFound  = errors.New("time-value profile not found")
	ErrInvalidMonthKey  = errors.New("invalid month key")
	ErrInvalidRange     = errors.New("invalid month range")
	ErrRangeTooLong     = errors.New("month range exceeds maximum length")
	ErrInvalidRow       = errors.New("invalid row")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrRateNotFound     = errors.New("exchange rate not found")
)

// Validation constants
const (
	MaxReportMonths   = 240
	MaxForecastMonths = 60
)
