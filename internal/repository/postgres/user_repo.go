package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByAuth0ID retrieves a user by their Auth0 ID
func (r *UserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	var (
		id   pgtype.UUID
		user domain.User
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, auth0_id, email, created_at FROM users WHERE auth0_id = $1`,
		auth0ID,
	).Scan(&id, &user.Auth0ID, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.ID = pgUUIDToUUID(id)
	return &user, nil
}

// GetProfile retrieves the time-value profile of a user
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.TimeValueProfile, error) {
	var (
		rate    pgtype.Numeric
		profile = domain.TimeValueProfile{UserID: userID}
	)
	err := r.pool.QueryRow(ctx,
		`SELECT currency, hourly_rate, implied_salary_enabled, implied_salary_hours_per_week
		 FROM time_value_profiles WHERE user_id = $1`,
		uuidToPg(userID),
	).Scan(&profile.Currency, &rate, &profile.ImpliedSalaryEnabled, &profile.ImpliedSalaryHoursPerWeek)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	profile.HourlyRate = pgNumericToDecimalPtr(rate)
	return &profile, nil
}

// ListHourlyRateChanges retrieves the hourly rate history of a user, oldest first
func (r *UserRepository) ListHourlyRateChanges(ctx context.Context, userID uuid.UUID) ([]*domain.HourlyRateChange, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT effective_from, rate FROM hourly_rate_changes
		 WHERE user_id = $1 ORDER BY effective_from`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.HourlyRateChange, error) {
		var (
			change domain.HourlyRateChange
			rate   pgtype.Numeric
		)
		if err := row.Scan(&change.EffectiveFrom, &rate); err != nil {
			return nil, err
		}
		change.Rate = pgNumericToDecimal(rate)
		return &change, nil
	})
}
