package postgres

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository implements domain.ActivityRepository using PostgreSQL
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// ListByUser retrieves all activities of a user
func (r *ActivityRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Activity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, duration_minutes, frequency, direct_cost_cents, saved_minutes, currency, category_id
		 FROM activities WHERE user_id = $1 ORDER BY id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Activity, error) {
		var (
			activity   domain.Activity
			user       pgtype.UUID
			frequency  string
			categoryID pgtype.Int4
		)
		if err := row.Scan(&activity.ID, &user, &activity.Name, &activity.DurationMinutes, &frequency,
			&activity.DirectCostCents, &activity.SavedMinutes, &activity.Currency, &categoryID); err != nil {
			return nil, err
		}
		activity.UserID = pgUUIDToUUID(user)
		activity.Frequency = domain.Frequency(frequency)
		activity.CategoryID = pgInt4ToPtr(categoryID)
		return &activity, nil
	})
}
