package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user in the system
type User struct {
	ID        uuid.UUID `json:"id"`
	Auth0ID   string    `json:"auth0Id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeValueProfile holds the settings a report is valued with
type TimeValueProfile struct {
	UserID                    uuid.UUID        `json:"userId"`
	Currency                  string           `json:"currency"`
	HourlyRate                *decimal.Decimal `json:"hourlyRate,omitempty"`
	ImpliedSalaryEnabled      bool             `json:"impliedSalaryEnabled"`
	ImpliedSalaryHoursPerWeek float64          `json:"impliedSalaryHoursPerWeek"`
}

// HourlyRateChange sets the hourly rate from a month onwards
type HourlyRateChange struct {
	EffectiveFrom string          `json:"effectiveFrom"`
	Rate          decimal.Decimal `json:"rate"`
}

type UserRepository interface {
	GetByAuth0ID(ctx context.Context, auth0ID string) (*User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*TimeValueProfile, error)
	ListHourlyRateChanges(ctx context.Context, userID uuid.UUID) ([]*HourlyRateChange, error)
}
