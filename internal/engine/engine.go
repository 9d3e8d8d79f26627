package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the aggregation engine
type Config struct {
	Concurrency    int // Conversions in flight per flow computer
	ForecastMonths int // Default projection horizon
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Concurrency:    8,
		ForecastMonths: 6,
	}
}

// Engine turns row collections into a month-indexed time-value report
type Engine struct {
	logger         zerolog.Logger
	concurrency    int
	forecastMonths int
}

// New creates a new Engine
func New(logger zerolog.Logger, config Config) *Engine {
	defaults := DefaultConfig()
	if config.Concurrency <= 0 {
		config.Concurrency = defaults.Concurrency
	}
	if config.ForecastMonths < 0 {
		config.ForecastMonths = defaults.ForecastMonths
	}

	return &Engine{
		logger:         logger.With().Str("component", "timevalue_engine").Logger(),
		concurrency:    config.Concurrency,
		forecastMonths: config.ForecastMonths,
	}
}

// Rows are the records of one user, already scoped by the caller
type Rows struct {
	Incomes       []*domain.Income
	Expenses      []*domain.Expense
	Assets        []*domain.DurableAsset
	Activities    []*domain.Activity
	Budgets       []*domain.BudgetAllocation
	Goals         []*domain.Goal
	Contributions []*domain.GoalContribution
}

// Validate rejects the first malformed row
func (r *Rows) Validate() error {
	for _, err := range []error{
		validateRows(r.Incomes),
		validateRows(r.Expenses),
		validateRows(r.Assets),
		validateRows(r.Activities),
		validateRows(r.Budgets),
		validateRows(r.Goals),
		validateRows(r.Contributions),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

type validatable[T any] interface {
	*T
	Validate() error
}

func validateRows[T any, P validatable[T]](rows []P) error {
	for _, row := range rows {
		if row == nil {
			return fmt.Errorf("%w: nil row", domain.ErrInvalidRow)
		}
		if err := row.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Request is one aggregation run
type Request struct {
	From           string
	To             string
	ForecastMonths *int // nil uses the engine default; 0 projects nothing
	Context        ConversionContext
	Rows           Rows
}

// Aggregate runs every flow computer over the requested range.
// Income, expense, asset and activity flows run concurrently; the budget needs expense category hours,
// goals need the aggregate net savings rate.
func (e *Engine) Aggregate(ctx context.Context, req Request) (*domain.TimeValueReport, error) {
	months, err := validateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	cc := req.Context
	if err := domain.ValidateCurrency(cc.UserCurrency); err != nil {
		return nil, err
	}
	if cc.Rates == nil {
		return nil, fmt.Errorf("%w: rate function is required", domain.ErrInvalidInput)
	}
	if err := req.Rows.Validate(); err != nil {
		return nil, err
	}
	horizon := e.forecastMonths
	if req.ForecastMonths != nil {
		if *req.ForecastMonths < 0 || *req.ForecastMonths > domain.MaxForecastMonths {
			return nil, fmt.Errorf("%w: forecast months must be between 0 and %d", domain.ErrInvalidInput, domain.MaxForecastMonths)
		}
		horizon = *req.ForecastMonths
	}

	start := time.Now()
	n := NewNormalizer(&cc, e.logger)
	rows := req.Rows

	var (
		income     domain.IncomeFlow
		expenses   domain.ExpenseFlow
		assets     domain.AssetFlow
		activities domain.ActivityFlow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = e.computeIncome(gctx, n, months, rows.Incomes)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = e.computeExpenses(gctx, n, months, rows.Expenses)
		return err
	})
	g.Go(func() (err error) {
		assets, err = e.computeAssets(gctx, n, months, rows.Assets)
		return err
	})
	g.Go(func() (err error) {
		activities, err = e.computeActivities(gctx, n, months, rows.Activities)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	budget, err := e.computeBudget(ctx, n, months, rows.Budgets, expenses.CategoryHours)
	if err != nil {
		return nil, err
	}

	agg := combine(months, expenses, assets, activities)

	goals, err := e.computeGoals(ctx, n, rows.Goals, rows.Contributions, agg.netSavingsPerMonth)
	if err != nil {
		return nil, err
	}

	report := &domain.TimeValueReport{
		From:                    req.From,
		To:                      req.To,
		Months:                  months,
		Currency:                cc.UserCurrency,
		HourlyRate:              cc.hourlyRate(),
		Income:                  income,
		Expenses:                expenses,
		Assets:                  assets,
		Activities:              activities,
		Budget:                  budget,
		TimeCostHours:           agg.timeCost,
		TimeSavingsHours:        agg.timeSavings,
		TimeBurnNet:             agg.timeBurnNet,
		NetSavingsHoursPerMonth: agg.netSavingsPerMonth,
		CategoryCostHours:       agg.categoryCost,
		CategorySavingsHours:    agg.categorySavings,
		CategoryExpenseMoney:    agg.categoryMoney,
		Goals:                   goals,
		Forecast:                forecastBurn(months, agg.timeBurnNet, horizon),
		DegradedConversions:     n.Degraded(),
	}
	report.FXDegraded = len(report.DegradedConversions) > 0
	report.InsufficientData = !agg.timeBurnNet.Computable()
	for _, goal := range goals {
		if goal.NeedsHourlyRate {
			report.InsufficientData = true
		}
	}

	e.logger.Debug().
		Str("from", req.From).
		Str("to", req.To).
		Int("months", len(months)).
		Bool("fx_degraded", report.FXDegraded).
		Bool("insufficient_data", report.InsufficientData).
		Dur("elapsed", time.Since(start)).
		Msg("Aggregated time-value report")

	return report, nil
}

func validateRange(from, to string) ([]string, error) {
	if _, err := util.ParseMonthKey(from); err != nil {
		return nil, err
	}
	if _, err := util.ParseMonthKey(to); err != nil {
		return nil, err
	}
	months := util.MonthRange(from, to)
	if len(months) == 0 {
		return nil, fmt.Errorf("%w: %s is after %s", domain.ErrInvalidRange, from, to)
	}
	if len(months) > domain.MaxReportMonths {
		return nil, domain.ErrRangeTooLong
	}
	return months, nil
}
