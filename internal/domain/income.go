package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Income struct {
	ID          int32     `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	ReceivedAt  time.Time `json:"receivedAt"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	Source      string    `json:"source"`
	Recurring   Frequency `json:"recurring"`
}

// Validate rejects rows the engine cannot compute with
func (i *Income) Validate() error {
	if i.ReceivedAt.IsZero() {
		return rowError("income", i.ID, "received_at is required")
	}
	if err := ValidateCurrency(i.Currency); err != nil {
		return rowError("income", i.ID, err.Error())
	}
	if !i.Recurring.validFor(FrequencyNone) {
		return rowError("income", i.ID, ErrInvalidFrequency.Error())
	}
	return nil
}

type IncomeRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Income, error)
}
