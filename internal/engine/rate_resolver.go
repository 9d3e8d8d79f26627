package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

// RateFunc returns how many units of "to" one unit of "from" buys on date
type RateFunc func(ctx context.Context, from, to string, date time.Time) (float64, error)

// RateResolverConfig holds configuration for the rate resolver
type RateResolverConfig struct {
	BaseCurrency string
	CacheTTL     time.Duration
	CacheSize    int
}

// DefaultRateResolverConfig returns sensible defaults
func DefaultRateResolverConfig() RateResolverConfig {
	return RateResolverConfig{
		BaseCurrency: "USD",
		CacheTTL:     1 * time.Hour,
		CacheSize:    4096,
	}
}

// RateResolver resolves same-day exchange rates from the rate table, falling back to the latest
// known rate, then to the inverse leg against the base currency, then to triangulation through it.
// One resolver is shared by the whole process; successful lookups are cached until the TTL expires.
type RateResolver struct {
	repo   domain.ExchangeRateRepository
	base   string
	cache  *expirable.LRU[string, float64]
	logger zerolog.Logger
}

// NewRateResolver creates a new RateResolver
func NewRateResolver(repo domain.ExchangeRateRepository, logger zerolog.Logger, config RateResolverConfig) *RateResolver {
	defaults := DefaultRateResolverConfig()
	if config.BaseCurrency == "" {
		config.BaseCurrency = defaults.BaseCurrency
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	if config.CacheSize <= 0 {
		config.CacheSize = defaults.CacheSize
	}

	return &RateResolver{
		repo:   repo,
		base:   config.BaseCurrency,
		cache:  expirable.NewLRU[string, float64](config.CacheSize, nil, config.CacheTTL),
		logger: logger.With().Str("component", "rate_resolver").Logger(),
	}
}

// Base returns the triangulation currency
func (r *RateResolver) Base() string {
	return r.base
}

// Rate returns the exchange rate from -> to valid on date
func (r *RateResolver) Rate(ctx context.Context, from, to string, date time.Time) (float64, error) {
	if from == to {
		return 1, nil
	}

	day := util.DateOnly(date)
	key := from + ":" + to + ":" + day.Format(time.DateOnly)
	if rate, ok := r.cache.Get(key); ok {
		return rate, nil
	}

	rate, err := r.resolve(ctx, from, to, day)
	if err != nil {
		return 0, err
	}

	r.cache.Add(key, rate)
	return rate, nil
}

func (r *RateResolver) resolve(ctx context.Context, from, to string, day time.Time) (float64, error) {
	rate, err := r.lookup(ctx, from, to, day)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return 0, err
	}

	// One side is the base: the table may only carry the opposite direction
	if from == r.base || to == r.base {
		leg, err := r.lookup(ctx, to, from, day)
		if err != nil {
			return 0, r.noPath(from, to, day, err)
		}
		return 1 / leg, nil
	}

	fromLeg, err := r.toBase(ctx, from, day)
	if err != nil {
		return 0, r.noPath(from, to, day, err)
	}
	toLeg, err := r.toBase(ctx, to, day)
	if err != nil {
		return 0, r.noPath(from, to, day, err)
	}

	r.logger.Debug().
		Str("from", from).
		Str("to", to).
		Str("base", r.base).
		Msg("Triangulated exchange rate")

	return fromLeg / toLeg, nil
}

// toBase returns the value of one unit of currency in the base currency
func (r *RateResolver) toBase(ctx context.Context, currency string, day time.Time) (float64, error) {
	rate, err := r.lookup(ctx, currency, r.base, day)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return 0, err
	}

	inverse, err := r.lookup(ctx, r.base, currency, day)
	if err != nil {
		return 0, err
	}
	return 1 / inverse, nil
}

// lookup reads the pair for the exact day, then the latest day on record
func (r *RateResolver) lookup(ctx context.Context, base, quote string, day time.Time) (float64, error) {
	row, err := r.repo.GetByDay(ctx, day, base, quote)
	if errors.Is(err, domain.ErrRateNotFound) {
		row, err = r.repo.GetLatest(ctx, base, quote)
	}
	if err != nil {
		return 0, err
	}

	rate := row.Rate.InexactFloat64()
	if rate <= 0 {
		return 0, fmt.Errorf("%w: non-positive rate %s/%s", domain.ErrRateNotFound, base, quote)
	}
	return rate, nil
}

func (r *RateResolver) noPath(from, to string, day time.Time, cause error) error {
	if errors.Is(cause, domain.ErrRateNotFound) {
		return fmt.Errorf("%w: %s -> %s on %s", domain.ErrRateNotFound, from, to, day.Format(time.DateOnly))
	}
	return cause
}
