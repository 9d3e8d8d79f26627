package engine

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
)

type assetPart struct {
	metrics    domain.AssetMetrics
	saved      monthAmounts
	maintMoney monthAmounts
	capexHours *float64
}

func (e *Engine) computeAssets(ctx context.Context, n *Normalizer, months []string, rows []*domain.DurableAsset) (domain.AssetFlow, error) {
	cc := n.cc
	flow := domain.AssetFlow{
		Metrics:         make([]domain.AssetMetrics, 0, len(rows)),
		SavedHours:      domain.NewMonthlySeries(months),
		MaintHours:      cc.newHourSeries(months),
		MaintMoney:      domain.NewMonthlySeries(months),
		CapexAmortHours: cc.newHourSeries(months),
		CategorySaved:   make(map[int32]domain.MonthlySeries),
		CategoryCost:    make(map[int32]domain.HourSeries),
	}

	parts := make([]assetPart, len(rows))
	err := forEach(ctx, len(rows), e.concurrency, func(ctx context.Context, i int) error {
		row := rows[i]
		part := assetPart{
			metrics:    assetMetrics(ctx, n, row),
			saved:      monthAmounts{},
			maintMoney: monthAmounts{},
		}
		part.capexHours = part.metrics.CapexHours

		purchase := util.MonthKey(row.PurchaseDate)
		for _, month := range months {
			offset := util.MonthsBetween(purchase, month)
			if offset < 0 || offset >= row.ExpectedLifeMonths {
				continue
			}
			part.saved[month] = row.HoursSavedPerMonth
			part.maintMoney[month] = n.MoneyToUser(ctx, row.MaintenanceCentsPerMonth, row.Currency, util.MonthStart(month))
		}

		parts[i] = part
		return nil
	})
	if err != nil {
		return domain.AssetFlow{}, err
	}

	window := cc.CapexAmortizationMonths
	for i, row := range rows {
		part := parts[i]
		flow.Metrics = append(flow.Metrics, part.metrics)

		var catSaved domain.MonthlySeries
		var catCost domain.HourSeries
		if row.CategoryID != nil {
			id := *row.CategoryID
			if flow.CategorySaved[id] == nil {
				flow.CategorySaved[id] = domain.NewMonthlySeries(months)
				flow.CategoryCost[id] = cc.newHourSeries(months)
			}
			catSaved, catCost = flow.CategorySaved[id], flow.CategoryCost[id]
		}

		for _, month := range months {
			if saved, ok := part.saved[month]; ok {
				maint := part.maintMoney[month]
				maintHours := cc.MoneyToHoursForMonth(maint, month)
				flow.SavedHours.Add(month, saved)
				flow.MaintMoney.Add(month, maint)
				flow.MaintHours.Add(month, maintHours)
				if catSaved != nil {
					catSaved.Add(month, saved)
					catCost.Add(month, maintHours)
				}
			}

			// Capex spreads from purchase independently of the life window
			if window > 0 {
				offset := util.MonthsBetween(util.MonthKey(row.PurchaseDate), month)
				if offset >= 0 && offset < window {
					var share *float64
					if part.capexHours != nil {
						share = domain.Float(*part.capexHours / float64(window))
					}
					flow.CapexAmortHours.Add(month, share)
				}
			}
		}
	}

	return flow, nil
}

// assetMetrics values an asset once, at its purchase date
func assetMetrics(ctx context.Context, n *Normalizer, row *domain.DurableAsset) domain.AssetMetrics {
	cc := n.cc
	price := n.MoneyToUser(ctx, row.PriceCents, row.Currency, row.PurchaseDate)
	maint := n.MoneyToUser(ctx, row.MaintenanceCentsPerMonth, row.Currency, row.PurchaseDate)

	m := domain.AssetMetrics{
		AssetID:            row.ID,
		Name:               row.Name,
		CapexHours:         cc.MoneyToHours(price),
		MaintHoursPerMonth: cc.MoneyToHours(maint),
	}

	if m.MaintHoursPerMonth == nil {
		return m
	}
	net := row.HoursSavedPerMonth - *m.MaintHoursPerMonth
	m.NetHoursPerMonth = domain.Float(net)

	if m.CapexHours != nil {
		if net > 0 {
			m.PaybackMonths = domain.Float(*m.CapexHours / net)
		}
		m.LifetimeROIHours = domain.Float(net*float64(row.ExpectedLifeMonths) - *m.CapexHours)
	}
	return m
}
