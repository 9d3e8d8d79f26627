package engine

import (
	"math"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
)

const breakevenEpsilon = 1e-9

// flatTolerance is the slope below which a trend counts as flat, relative to the largest value
const flatTolerance = 1e-9

// LinearFit returns the least-squares slope and intercept of values against their index
func LinearFit(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return 0, values[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// Forecast extends the net-burn history of months by horizon months and looks for the month the
// trend reaches zero. It returns nil for an empty history.
func Forecast(months []string, history []float64, horizon int) *domain.Forecast {
	if len(history) == 0 || len(history) != len(months) {
		return nil
	}

	slope, intercept := LinearFit(history)
	f := &domain.Forecast{
		Slope:     slope,
		Intercept: intercept,
		Points:    make([]domain.ForecastPoint, 0, horizon),
	}

	first := months[0]
	lastIndex := len(history) - 1
	for h := 1; h <= horizon; h++ {
		x := lastIndex + h
		f.Points = append(f.Points, domain.ForecastPoint{
			Month: util.AddMonths(first, x),
			Value: intercept + slope*float64(x),
		})
	}

	switch {
	case history[lastIndex] <= 0:
		breakeven := months[lastIndex]
		f.BreakevenMonth = &breakeven
	case slope < -flatSlope(history):
		x0 := -intercept / slope
		// Crossings beyond the longest report range are not projected
		if x0 >= float64(lastIndex) && x0 <= float64(lastIndex+domain.MaxReportMonths) {
			breakeven := util.AddMonths(first, int(math.Ceil(x0-breakevenEpsilon)))
			f.BreakevenMonth = &breakeven
		}
	}

	return f
}

// flatSlope scales flatTolerance to the magnitude of values so rounding noise in the fit of a
// constant series never reads as a trend
func flatSlope(values []float64) float64 {
	scale := 1.0
	for _, v := range values {
		scale = math.Max(scale, math.Abs(v))
	}
	return flatTolerance * scale
}

// forecastBurn projects the net-burn series; nothing is projected while any month lacks a value
func forecastBurn(months []string, burn domain.HourSeries, horizon int) *domain.Forecast {
	if !burn.Computable() {
		return nil
	}
	history := make([]float64, len(months))
	for i, m := range months {
		history[i] = *burn[m]
	}
	return Forecast(months, history, horizon)
}
