package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BudgetAllocation struct {
	ID          int32     `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	CategoryID  int32     `json:"categoryId"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
}

// Validate rejects rows the engine cannot compute with
func (b *BudgetAllocation) Validate() error {
	if err := ValidateCurrency(b.Currency); err != nil {
		return rowError("budget allocation", b.ID, err.Error())
	}
	if b.AmountCents < 0 {
		return rowError("budget allocation", b.ID, "amount must not be negative")
	}
	if b.PeriodStart.IsZero() || b.PeriodEnd.IsZero() {
		return rowError("budget allocation", b.ID, "period is required")
	}
	if b.PeriodEnd.Before(b.PeriodStart) {
		return rowError("budget allocation", b.ID, "period_end is before period_start")
	}
	return nil
}

type BudgetAllocationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BudgetAllocation, error)
}
