package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Normalizer converts minor-unit amounts into the user's currency for one run.
// Rates are memoized per (from, to, month) and concurrent lookups of the same key share one call.
type Normalizer struct {
	cc     *ConversionContext
	logger zerolog.Logger

	group    singleflight.Group
	mu       sync.Mutex
	rates    map[string]float64
	degraded map[string]struct{}
}

// NewNormalizer creates a Normalizer for a single aggregation run
func NewNormalizer(cc *ConversionContext, logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		cc:       cc,
		logger:   logger,
		rates:    make(map[string]float64),
		degraded: make(map[string]struct{}),
	}
}

// MoneyToUser converts cents in currency "from", valued on date, into major units of the user currency
func (n *Normalizer) MoneyToUser(ctx context.Context, cents int64, from string, date time.Time) float64 {
	amount := float64(cents) / 100
	if cents == 0 || from == n.cc.UserCurrency {
		return amount
	}
	return amount * n.rate(ctx, from, date)
}

func (n *Normalizer) rate(ctx context.Context, from string, date time.Time) float64 {
	to := n.cc.UserCurrency
	key := from + ":" + to + ":" + util.MonthKey(date)

	n.mu.Lock()
	rate, ok := n.rates[key]
	n.mu.Unlock()
	if ok {
		return rate
	}

	v, _, _ := n.group.Do(key, func() (any, error) {
		n.mu.Lock()
		cached, ok := n.rates[key]
		n.mu.Unlock()
		if ok {
			return cached, nil
		}

		rate, err := n.cc.Rates(ctx, from, to, date)
		if err != nil {
			// FX soft-fail: value at 1:1 and record the key so the report is flagged as approximate
			n.logger.Warn().
				Err(err).
				Str("from", from).
				Str("to", to).
				Str("month", util.MonthKey(date)).
				Msg("Exchange rate unavailable, falling back to 1:1")
			rate = 1
			n.mu.Lock()
			n.degraded[key] = struct{}{}
			n.mu.Unlock()
		}

		n.mu.Lock()
		n.rates[key] = rate
		n.mu.Unlock()
		return rate, nil
	})
	return v.(float64)
}

// Degraded lists the (from:to:month) keys that fell back to 1:1, sorted
func (n *Normalizer) Degraded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	keys := make([]string, 0, len(n.degraded))
	for k := range n.degraded {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
