package engine

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
)

// ImpliedSalarySource is the breakdown key of the synthesized salary
const ImpliedSalarySource = "implied_salary"

func (e *Engine) computeIncome(ctx context.Context, n *Normalizer, months []string, rows []*domain.Income) (domain.IncomeFlow, error) {
	cc := n.cc
	flow := domain.IncomeFlow{
		Money:    domain.NewMonthlySeries(months),
		Hours:    cc.newHourSeries(months),
		BySource: make(map[string]domain.MonthlySeries),
	}

	inRange := monthSet(months)
	parts := make([]monthAmounts, len(rows))
	err := forEach(ctx, len(rows), e.concurrency, func(ctx context.Context, i int) error {
		row := rows[i]
		part := monthAmounts{}

		if !row.Recurring.IsPeriodic() {
			month := util.MonthKey(row.ReceivedAt)
			if inRange[month] {
				part[month] = n.MoneyToUser(ctx, row.AmountCents, row.Currency, row.ReceivedAt)
			}
		} else {
			// Re-valued every month so exchange rate drift shows up across the range
			factor := FreqToMonthly(row.Recurring)
			for _, month := range months {
				part[month] = n.MoneyToUser(ctx, row.AmountCents, row.Currency, util.MonthStart(month)) * factor
			}
		}

		parts[i] = part
		return nil
	})
	if err != nil {
		return domain.IncomeFlow{}, err
	}

	for i, row := range rows {
		source := flow.BySource[row.Source]
		if source == nil {
			source = domain.NewMonthlySeries(months)
			flow.BySource[row.Source] = source
		}
		for _, month := range months {
			amount, ok := parts[i][month]
			if !ok {
				continue
			}
			flow.Money.Add(month, amount)
			flow.Hours.Add(month, cc.MoneyToHoursForMonth(amount, month))
			source.Add(month, amount)
		}
	}

	if rate := cc.hourlyRate(); cc.ImpliedSalary.Enabled && rate != nil {
		salary := *rate * cc.ImpliedSalary.HoursPerWeek * WeeksPerMonth
		source := domain.NewMonthlySeries(months)
		for _, month := range months {
			flow.Money.Add(month, salary)
			flow.Hours.Add(month, cc.MoneyToHours(salary))
			source.Add(month, salary)
		}
		flow.BySource[ImpliedSalarySource] = source
	}

	return flow, nil
}

func monthSet(months []string) map[string]bool {
	set := make(map[string]bool, len(months))
	for _, m := range months {
		set[m] = true
	}
	return set
}
