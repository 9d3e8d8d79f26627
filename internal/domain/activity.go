package domain

import (
	"context"

	"github.com/google/uuid"
)

type Activity struct {
	ID              int32     `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Name            string    `json:"name"`
	DurationMinutes float64   `json:"durationMinutes"`
	Frequency       Frequency `json:"frequency"`
	DirectCostCents int64     `json:"directCostCents"`
	SavedMinutes    float64   `json:"savedMinutes"`
	Currency        string    `json:"currency"`
	CategoryID      *int32    `json:"categoryId,omitempty"`
}

// Validate rejects rows the engine cannot compute with
func (a *Activity) Validate() error {
	if err := ValidateCurrency(a.Currency); err != nil {
		return rowError("activity", a.ID, err.Error())
	}
	if !a.Frequency.validFor(FrequencyOnce) {
		return rowError("activity", a.ID, ErrInvalidFrequency.Error())
	}
	if a.DurationMinutes < 0 || a.SavedMinutes < 0 {
		return rowError("activity", a.ID, "minutes must not be negative")
	}
	return nil
}

type ActivityRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Activity, error)
}
