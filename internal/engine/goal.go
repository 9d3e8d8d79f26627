package engine

import (
	"context"
	"math"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
)

// computeGoals values goal targets and contributions in hours. netSavingsPerMonth drives the ETA.
func (e *Engine) computeGoals(ctx context.Context, n *Normalizer, goals []*domain.Goal, contributions []*domain.GoalContribution, netSavingsPerMonth *float64) ([]domain.GoalProgress, error) {
	byGoal := make(map[int32][]*domain.GoalContribution)
	for _, c := range contributions {
		byGoal[c.GoalID] = append(byGoal[c.GoalID], c)
	}

	results := make([]domain.GoalProgress, len(goals))
	err := forEach(ctx, len(goals), e.concurrency, func(ctx context.Context, i int) error {
		results[i] = goalProgress(ctx, n, goals[i], byGoal[goals[i].ID], netSavingsPerMonth)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func goalProgress(ctx context.Context, n *Normalizer, goal *domain.Goal, contributions []*domain.GoalContribution, netSavingsPerMonth *float64) domain.GoalProgress {
	cc := n.cc
	p := domain.GoalProgress{GoalID: goal.ID, Name: goal.Name}

	switch {
	case goal.TargetHours != nil:
		p.TargetHours = domain.Float(*goal.TargetHours)
	case goal.TargetAmountCents != nil:
		money := n.MoneyToUser(ctx, *goal.TargetAmountCents, goal.Currency, cc.now())
		p.TargetHours = cc.MoneyToHours(money)
		if p.TargetHours == nil {
			p.NeedsHourlyRate = true
		}
	}

	for _, c := range contributions {
		if c.Hours != nil {
			p.ProgressHours += *c.Hours
		}
		if c.AmountCents != nil {
			money := n.MoneyToUser(ctx, *c.AmountCents, goal.Currency, c.ContributedAt)
			if hours := cc.MoneyToHoursForMonth(money, util.MonthKey(c.ContributedAt)); hours != nil {
				p.ProgressHours += *hours
			} else {
				p.NeedsHourlyRate = true
			}
		}
	}

	if p.TargetHours == nil {
		return p
	}

	remaining := math.Max(0, *p.TargetHours-p.ProgressHours)
	p.RemainingHours = domain.Float(remaining)
	if *p.TargetHours > 0 {
		p.PercentComplete = domain.Float(p.ProgressHours / *p.TargetHours * 100)
	}
	if netSavingsPerMonth != nil && *netSavingsPerMonth > 0 {
		p.ETAMonths = domain.Float(remaining / *netSavingsPerMonth)
	}
	return p
}
