package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/engine"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReportRepositories are the stores a report is loaded from
type ReportRepositories struct {
	Users      domain.UserRepository
	Incomes    domain.IncomeRepository
	Expenses   domain.ExpenseRepository
	Assets     domain.DurableAssetRepository
	Activities domain.ActivityRepository
	Budgets    domain.BudgetAllocationRepository
	Goals      domain.GoalRepository
}

// ReportServiceConfig holds the valuation settings applied to every report
type ReportServiceConfig struct {
	OneTimeAmortizationMonths int
	CapexAmortizationMonths   int
}

// ReportService loads a user's rows and runs the aggregation engine over them
type ReportService struct {
	repos  ReportRepositories
	engine *engine.Engine
	rates  engine.RateFunc
	config ReportServiceConfig
	logger zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	repos ReportRepositories,
	eng *engine.Engine,
	rates engine.RateFunc,
	logger zerolog.Logger,
	config ReportServiceConfig,
) *ReportService {
	return &ReportService{
		repos:  repos,
		engine: eng,
		rates:  rates,
		config: config,
		logger: logger.With().Str("component", "report_service").Logger(),
	}
}

// GetReport builds the time-value report of a user for the months from..to.
// horizon is the number of forecast months; nil uses the engine default.
func (s *ReportService) GetReport(ctx context.Context, userID uuid.UUID, from, to string, horizon *int) (*domain.TimeValueReport, error) {
	if horizon != nil && (*horizon < 0 || *horizon > domain.MaxForecastMonths) {
		return nil, fmt.Errorf("%w: horizon must be between 0 and %d", domain.ErrInvalidInput, domain.MaxForecastMonths)
	}

	var (
		profile     *domain.TimeValueProfile
		rateChanges []*domain.HourlyRateChange
		rows        engine.Rows
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = s.repos.Users.GetProfile(gctx, userID)
		return wrapLoad("profile", err)
	})
	g.Go(func() (err error) {
		rateChanges, err = s.repos.Users.ListHourlyRateChanges(gctx, userID)
		return wrapLoad("hourly rate history", err)
	})
	g.Go(func() (err error) {
		rows.Incomes, err = s.repos.Incomes.ListByUser(gctx, userID)
		return wrapLoad("incomes", err)
	})
	g.Go(func() (err error) {
		rows.Expenses, err = s.repos.Expenses.ListByUser(gctx, userID)
		return wrapLoad("expenses", err)
	})
	g.Go(func() (err error) {
		rows.Assets, err = s.repos.Assets.ListByUser(gctx, userID)
		return wrapLoad("assets", err)
	})
	g.Go(func() (err error) {
		rows.Activities, err = s.repos.Activities.ListByUser(gctx, userID)
		return wrapLoad("activities", err)
	})
	g.Go(func() (err error) {
		rows.Budgets, err = s.repos.Budgets.ListByUser(gctx, userID)
		return wrapLoad("budget allocations", err)
	})
	g.Go(func() (err error) {
		rows.Goals, err = s.repos.Goals.ListByUser(gctx, userID)
		return wrapLoad("goals", err)
	})
	g.Go(func() (err error) {
		rows.Contributions, err = s.repos.Goals.ListContributionsByUser(gctx, userID)
		return wrapLoad("goal contributions", err)
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load report rows")
		return nil, err
	}

	report, err := s.engine.Aggregate(ctx, engine.Request{
		From:           from,
		To:             to,
		ForecastMonths: horizon,
		Context:        s.conversionContext(profile, rateChanges),
		Rows:           rows,
	})
	if err != nil {
		return nil, err
	}

	if report.FXDegraded {
		s.logger.Info().
			Str("user_id", userID.String()).
			Strs("conversions", report.DegradedConversions).
			Msg("Report used 1:1 fallback conversions")
	}
	return report, nil
}

func (s *ReportService) conversionContext(profile *domain.TimeValueProfile, rateChanges []*domain.HourlyRateChange) engine.ConversionContext {
	cc := engine.ConversionContext{
		UserCurrency:              profile.Currency,
		HourlyRateForMonth:        hourlyRateSchedule(rateChanges),
		Rates:                     s.rates,
		OneTimeAmortizationMonths: s.config.OneTimeAmortizationMonths,
		CapexAmortizationMonths:   s.config.CapexAmortizationMonths,
		ImpliedSalary: engine.ImpliedSalary{
			Enabled:      profile.ImpliedSalaryEnabled,
			HoursPerWeek: profile.ImpliedSalaryHoursPerWeek,
		},
	}
	if profile.HourlyRate != nil {
		rate := profile.HourlyRate.InexactFloat64()
		cc.HourlyRate = &rate
	}
	return cc
}

// hourlyRateSchedule returns the latest rate effective on or before a month, or nil before the first change
func hourlyRateSchedule(changes []*domain.HourlyRateChange) func(month string) *float64 {
	if len(changes) == 0 {
		return nil
	}
	sorted := make([]*domain.HourlyRateChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom < sorted[j].EffectiveFrom
	})

	return func(month string) *float64 {
		i := sort.Search(len(sorted), func(i int) bool {
			return sorted[i].EffectiveFrom > month
		})
		if i == 0 {
			return nil
		}
		rate := sorted[i-1].Rate.InexactFloat64()
		return &rate
	}
}

func wrapLoad(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}
