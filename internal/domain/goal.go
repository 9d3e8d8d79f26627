package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID                int32     `json:"id"`
	UserID            uuid.UUID `json:"userId"`
	Name              string    `json:"name"`
	TargetAmountCents *int64    `json:"targetAmountCents,omitempty"`
	TargetHours       *float64  `json:"targetHours,omitempty"`
	Currency          string    `json:"currency"`
}

// Validate rejects rows the engine cannot compute with
func (g *Goal) Validate() error {
	if err := ValidateCurrency(g.Currency); err != nil {
		return rowError("goal", g.ID, err.Error())
	}
	return nil
}

// GoalContribution adds money, hours or both towards a goal.
// Money is in the goal's currency.
type GoalContribution struct {
	ID            int32     `json:"id"`
	GoalID        int32     `json:"goalId"`
	ContributedAt time.Time `json:"contributedAt"`
	AmountCents   *int64    `json:"amountCents,omitempty"`
	Hours         *float64  `json:"hours,omitempty"`
}

// Validate rejects rows the engine cannot compute with
func (c *GoalContribution) Validate() error {
	if c.ContributedAt.IsZero() {
		return rowError("goal contribution", c.ID, "contributed_at is required")
	}
	return nil
}

type GoalRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	ListContributionsByUser(ctx context.Context, userID uuid.UUID) ([]*GoalContribution, error)
}
