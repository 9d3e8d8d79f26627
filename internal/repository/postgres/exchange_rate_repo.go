package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExchangeRateRepository implements domain.ExchangeRateRepository using PostgreSQL
type ExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewExchangeRateRepository creates a new ExchangeRateRepository
func NewExchangeRateRepository(pool *pgxpool.Pool) *ExchangeRateRepository {
	return &ExchangeRateRepository{pool: pool}
}

// GetByDay retrieves the rate of a pair for an exact day
func (r *ExchangeRateRepository) GetByDay(ctx context.Context, day time.Time, base, quote string) (*domain.ExchangeRate, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT day, base, quote, rate FROM exchange_rates
		 WHERE day = $1 AND base = $2 AND quote = $3`,
		timeToPgDate(day), base, quote,
	)
	return scanExchangeRate(row)
}

// GetLatest retrieves the most recent rate on record for a pair
func (r *ExchangeRateRepository) GetLatest(ctx context.Context, base, quote string) (*domain.ExchangeRate, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT day, base, quote, rate FROM exchange_rates
		 WHERE base = $1 AND quote = $2
		 ORDER BY day DESC LIMIT 1`,
		base, quote,
	)
	return scanExchangeRate(row)
}

// Upsert stores the rate of a pair for a day, replacing any existing value
func (r *ExchangeRateRepository) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	num, err := decimalToPgNumeric(rate.Rate)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO exchange_rates (day, base, quote, rate) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (day, base, quote) DO UPDATE SET rate = EXCLUDED.rate`,
		timeToPgDate(rate.Day), rate.Base, rate.Quote, num,
	)
	return err
}

func scanExchangeRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var (
		day  pgtype.Date
		rate pgtype.Numeric
		out  domain.ExchangeRate
	)
	if err := row.Scan(&day, &out.Base, &out.Quote, &rate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRateNotFound
		}
		return nil, err
	}
	out.Day = pgDateToTime(day)
	out.Rate = pgNumericToDecimal(rate)
	return &out, nil
}
