package engine

import (
	"context"
	"math"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
)

const roiEpsilon = 1e-9

type activityPart struct {
	roi   domain.ActivityROI
	saved monthAmounts
	extra domain.HourSeries
	net   domain.HourSeries
}

// post books k occurrences with the given total cost into month
func (p *activityPart) post(month string, benefit, totalCost, k float64) {
	p.saved[month] = math.Max(0, benefit*k)
	p.extra[month] = domain.Float(math.Max(0, (totalCost-benefit)*k))
	p.net[month] = domain.Float((benefit - totalCost) * k)
}

// postUnvalued books the saving of k occurrences whose cost has no hour value in month
func (p *activityPart) postUnvalued(month string, benefit, k float64) {
	p.saved[month] = math.Max(0, benefit*k)
	p.extra[month] = nil
	p.net[month] = nil
}

func (e *Engine) computeActivities(ctx context.Context, n *Normalizer, months []string, rows []*domain.Activity) (domain.ActivityFlow, error) {
	cc := n.cc
	now := cc.now()
	current := util.MonthKey(now)
	inRange := monthSet(months)

	flow := domain.ActivityFlow{
		ROI:           make([]domain.ActivityROI, 0, len(rows)),
		SavedHours:    domain.NewMonthlySeries(months),
		ExtraHours:    cc.newHourSeries(months),
		NetHours:      cc.newHourSeries(months),
		CategorySaved: make(map[int32]domain.MonthlySeries),
		CategoryExtra: make(map[int32]domain.HourSeries),
	}

	parts := make([]activityPart, len(rows))
	err := forEach(ctx, len(rows), e.concurrency, func(ctx context.Context, i int) error {
		row := rows[i]
		timeCost := row.DurationMinutes / 60
		benefit := row.SavedMinutes / 60

		roi := domain.ActivityROI{
			ActivityID:        row.ID,
			Name:              row.Name,
			TimeCostHours:     timeCost,
			MoneyCostHours:    cc.MoneyToHours(n.MoneyToUser(ctx, row.DirectCostCents, row.Currency, now)),
			BenefitHours:      benefit,
			MonthlyOccurrence: FreqToMonthly(row.Frequency),
		}
		if roi.MoneyCostHours != nil {
			total := timeCost + *roi.MoneyCostHours
			roi.TotalCostHours = domain.Float(total)
			roi.NetPerOccurrence = domain.Float(benefit - total)
			if total > roiEpsilon {
				roi.ROI = domain.Float(benefit / total)
			}
		}

		part := activityPart{roi: roi, saved: monthAmounts{}, extra: domain.HourSeries{}, net: domain.HourSeries{}}
		if !row.Frequency.IsPeriodic() {
			if inRange[current] {
				if roi.TotalCostHours != nil {
					part.post(current, benefit, *roi.TotalCostHours, 1)
				} else {
					part.postUnvalued(current, benefit, 1)
				}
			}
		} else {
			k := roi.MonthlyOccurrence
			for _, month := range months {
				costMoney := n.MoneyToUser(ctx, row.DirectCostCents, row.Currency, util.MonthStart(month))
				costHours := cc.MoneyToHoursForMonth(costMoney, month)
				if costHours == nil {
					part.postUnvalued(month, benefit, k)
					continue
				}
				part.post(month, benefit, timeCost+*costHours, k)
			}
		}

		parts[i] = part
		return nil
	})
	if err != nil {
		return domain.ActivityFlow{}, err
	}

	for i, row := range rows {
		part := parts[i]
		flow.ROI = append(flow.ROI, part.roi)

		var (
			catSaved domain.MonthlySeries
			catExtra domain.HourSeries
		)
		if row.CategoryID != nil {
			id := *row.CategoryID
			if flow.CategorySaved[id] == nil {
				flow.CategorySaved[id] = domain.NewMonthlySeries(months)
				flow.CategoryExtra[id] = cc.newHourSeries(months)
			}
			catSaved, catExtra = flow.CategorySaved[id], flow.CategoryExtra[id]
		}

		for _, month := range months {
			if saved, ok := part.saved[month]; ok {
				flow.SavedHours.Add(month, saved)
				if catSaved != nil {
					catSaved.Add(month, saved)
				}
			}
			if extra, ok := part.extra[month]; ok {
				flow.ExtraHours.Add(month, extra)
				if catExtra != nil {
					catExtra.Add(month, extra)
				}
			}
			if net, ok := part.net[month]; ok {
				flow.NetHours.Add(month, net)
			}
		}
	}

	return flow, nil
}
