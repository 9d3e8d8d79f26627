package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          int32      `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	AmountCents int64      `json:"amountCents"`
	Currency    string     `json:"currency"`
	Frequency   Frequency  `json:"frequency"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
	CategoryID  *int32     `json:"categoryId,omitempty"`
}

// Inactive is true only for rows explicitly switched off
func (e *Expense) Inactive() bool {
	return e.IsActive != nil && !*e.IsActive
}

// Validate rejects rows the engine cannot compute with
func (e *Expense) Validate() error {
	if e.StartDate.IsZero() {
		return rowError("expense", e.ID, "start_date is required")
	}
	if err := ValidateCurrency(e.Currency); err != nil {
		return rowError("expense", e.ID, err.Error())
	}
	if !e.Frequency.validFor(FrequencyOnce) {
		return rowError("expense", e.ID, ErrInvalidFrequency.Error())
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return rowError("expense", e.ID, "end_date is before start_date")
	}
	return nil
}

type ExpenseRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Expense, error)
}
