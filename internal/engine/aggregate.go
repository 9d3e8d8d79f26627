package engine

import "github.com/dafibh/fortuna/timevalue-backend/internal/domain"

type aggregate struct {
	timeCost           domain.HourSeries
	timeSavings        domain.MonthlySeries
	timeBurnNet        domain.HourSeries
	netSavingsPerMonth *float64
	categoryCost       map[int32]domain.HourSeries
	categorySavings    map[int32]domain.MonthlySeries
	categoryMoney      map[int32]domain.MonthlySeries
}

// combine merges the flow outputs into cost, savings and net-burn series
func combine(months []string, expenses domain.ExpenseFlow, assets domain.AssetFlow, activities domain.ActivityFlow) aggregate {
	agg := aggregate{
		timeCost:        domain.NewHourSeries(months),
		timeSavings:     domain.NewMonthlySeries(months),
		timeBurnNet:     domain.NewHourSeries(months),
		categoryCost:    make(map[int32]domain.HourSeries),
		categorySavings: make(map[int32]domain.MonthlySeries),
		categoryMoney:   make(map[int32]domain.MonthlySeries),
	}

	for _, m := range months {
		agg.timeCost.Add(m, expenses.Hours[m])
		agg.timeCost.Add(m, assets.MaintHours[m])
		agg.timeCost.Add(m, activities.ExtraHours[m])
		agg.timeCost.Add(m, assets.CapexAmortHours[m])

		agg.timeSavings.Add(m, assets.SavedHours[m])
		agg.timeSavings.Add(m, activities.SavedHours[m])

		agg.timeBurnNet.Add(m, agg.timeCost[m])
		agg.timeBurnNet.Add(m, domain.Float(-agg.timeSavings[m]))
	}

	if len(months) > 0 && agg.timeBurnNet.Computable() {
		sum := 0.0
		for _, m := range months {
			sum -= *agg.timeBurnNet[m]
		}
		agg.netSavingsPerMonth = domain.Float(sum / float64(len(months)))
	}

	unionHours(agg.categoryCost, months, expenses.CategoryHours)
	unionHours(agg.categoryCost, months, assets.CategoryCost)
	unionMonthly(agg.categorySavings, months, assets.CategorySaved)
	unionMonthly(agg.categorySavings, months, activities.CategorySaved)
	unionHours(agg.categoryCost, months, activities.CategoryExtra)
	unionMonthly(agg.categoryMoney, months, expenses.CategoryMoney)

	return agg
}

func unionHours(dst map[int32]domain.HourSeries, months []string, src map[int32]domain.HourSeries) {
	for id, series := range src {
		target := dst[id]
		if target == nil {
			target = domain.NewHourSeries(months)
			dst[id] = target
		}
		for _, m := range months {
			v, ok := series[m]
			if !ok {
				v = domain.Float(0)
			}
			target.Add(m, v)
		}
	}
}

func unionMonthly(dst map[int32]domain.MonthlySeries, months []string, src map[int32]domain.MonthlySeries) {
	for id, series := range src {
		target := dst[id]
		if target == nil {
			target = domain.NewMonthlySeries(months)
			dst[id] = target
		}
		for _, m := range months {
			target.Add(m, series[m])
		}
	}
}
