package engine

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
)

// splitCents divides cents across n parts, handing the remainder out one cent at a time from the first part
func splitCents(cents int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base, rem := cents/int64(n), cents%int64(n)
	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
		if int64(i) < rem {
			parts[i]++
		}
	}
	return parts
}

// computeBudget spreads allocations over the months they cover. When expenseHours is non-nil the
// variance against actual expense hours is computed for every budgeted category.
func (e *Engine) computeBudget(ctx context.Context, n *Normalizer, months []string, rows []*domain.BudgetAllocation, expenseHours map[int32]domain.HourSeries) (domain.BudgetFlow, error) {
	cc := n.cc
	flow := domain.BudgetFlow{
		Money:         domain.NewMonthlySeries(months),
		Hours:         cc.newHourSeries(months),
		CategoryMoney: make(map[int32]domain.MonthlySeries),
		CategoryHours: make(map[int32]domain.HourSeries),
	}

	parts := make([]monthAmounts, len(rows))
	err := forEach(ctx, len(rows), e.concurrency, func(ctx context.Context, i int) error {
		row := rows[i]
		first, last := util.MonthKey(row.PeriodStart), util.MonthKey(row.PeriodEnd)

		covered := make([]string, 0, len(months))
		for _, month := range months {
			if month >= first && month <= last {
				covered = append(covered, month)
			}
		}

		part := monthAmounts{}
		for j, cents := range splitCents(row.AmountCents, len(covered)) {
			month := covered[j]
			part[month] = n.MoneyToUser(ctx, cents, row.Currency, util.MonthStart(month))
		}
		parts[i] = part
		return nil
	})
	if err != nil {
		return domain.BudgetFlow{}, err
	}

	for i, row := range rows {
		id := row.CategoryID
		if flow.CategoryMoney[id] == nil {
			flow.CategoryMoney[id] = domain.NewMonthlySeries(months)
			flow.CategoryHours[id] = cc.newHourSeries(months)
		}
		for month, amount := range parts[i] {
			hours := cc.MoneyToHoursForMonth(amount, month)
			flow.Money.Add(month, amount)
			flow.Hours.Add(month, hours)
			flow.CategoryMoney[id].Add(month, amount)
			flow.CategoryHours[id].Add(month, hours)
		}
	}

	if expenseHours != nil {
		flow.VarianceHours = cc.newHourSeries(months)
		flow.CategoryVariance = make(map[int32]domain.HourSeries, len(flow.CategoryHours))
		for id, budgeted := range flow.CategoryHours {
			actual := expenseHours[id]
			variance := cc.newHourSeries(months)
			for _, month := range months {
				variance.Add(month, budgeted[month])
				if actual != nil {
					variance.Add(month, negate(actual[month]))
				}
				flow.VarianceHours.Add(month, variance[month])
			}
			flow.CategoryVariance[id] = variance
		}
	}

	return flow, nil
}

func negate(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return domain.Float(-*v)
}
