package postgres

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IncomeRepository implements domain.IncomeRepository using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

// ListByUser retrieves all incomes of a user
func (r *IncomeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Income, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, received_at, amount_cents, currency, source, recurring
		 FROM incomes WHERE user_id = $1 ORDER BY received_at, id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Income, error) {
		var (
			income     domain.Income
			user       pgtype.UUID
			receivedAt pgtype.Date
			recurring  string
		)
		if err := row.Scan(&income.ID, &user, &receivedAt, &income.AmountCents, &income.Currency, &income.Source, &recurring); err != nil {
			return nil, err
		}
		income.UserID = pgUUIDToUUID(user)
		income.ReceivedAt = pgDateToTime(receivedAt)
		income.Recurring = domain.Frequency(recurring)
		return &income, nil
	})
}
