package engine

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
)

func (e *Engine) computeExpenses(ctx context.Context, n *Normalizer, months []string, rows []*domain.Expense) (domain.ExpenseFlow, error) {
	cc := n.cc
	flow := domain.ExpenseFlow{
		Money:         domain.NewMonthlySeries(months),
		Hours:         cc.newHourSeries(months),
		CategoryMoney: make(map[int32]domain.MonthlySeries),
		CategoryHours: make(map[int32]domain.HourSeries),
	}

	inRange := monthSet(months)
	parts := make([]monthAmounts, len(rows))
	err := forEach(ctx, len(rows), e.concurrency, func(ctx context.Context, i int) error {
		row := rows[i]
		if row.Inactive() {
			return nil
		}

		part := monthAmounts{}
		if !row.Frequency.IsPeriodic() {
			start := util.MonthKey(row.StartDate)
			window := cc.OneTimeAmortizationMonths
			if window <= 0 {
				if inRange[start] {
					part[start] = n.MoneyToUser(ctx, row.AmountCents, row.Currency, row.StartDate)
				}
			} else if overlaps(inRange, start, window) {
				// Months of the window outside the range are dropped, not redistributed
				share := n.MoneyToUser(ctx, row.AmountCents, row.Currency, row.StartDate) / float64(window)
				for j := 0; j < window; j++ {
					if month := util.AddMonths(start, j); inRange[month] {
						part[month] = share
					}
				}
			}
		} else {
			factor := FreqToMonthly(row.Frequency)
			start := util.DateOnly(row.StartDate)
			for _, month := range months {
				if start.After(util.MonthEnd(month)) {
					continue
				}
				if row.EndDate != nil && util.DateOnly(*row.EndDate).Before(util.MonthStart(month)) {
					continue
				}
				part[month] = n.MoneyToUser(ctx, row.AmountCents, row.Currency, util.MonthStart(month)) * factor
			}
		}

		parts[i] = part
		return nil
	})
	if err != nil {
		return domain.ExpenseFlow{}, err
	}

	for i, row := range rows {
		if parts[i] == nil {
			continue
		}

		var catMoney domain.MonthlySeries
		var catHours domain.HourSeries
		if row.CategoryID != nil {
			id := *row.CategoryID
			if flow.CategoryMoney[id] == nil {
				flow.CategoryMoney[id] = domain.NewMonthlySeries(months)
				flow.CategoryHours[id] = cc.newHourSeries(months)
			}
			catMoney, catHours = flow.CategoryMoney[id], flow.CategoryHours[id]
		}

		for _, month := range months {
			amount, ok := parts[i][month]
			if !ok {
				continue
			}
			hours := cc.MoneyToHoursForMonth(amount, month)
			flow.Money.Add(month, amount)
			flow.Hours.Add(month, hours)
			if catMoney != nil {
				catMoney.Add(month, amount)
				catHours.Add(month, hours)
			}
		}
	}

	return flow, nil
}

// overlaps reports whether any of the window months starting at start is in range
func overlaps(inRange map[string]bool, start string, window int) bool {
	for j := 0; j < window; j++ {
		if inRange[util.AddMonths(start, j)] {
			return true
		}
	}
	return false
}
