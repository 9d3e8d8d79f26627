package postgres

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetAllocationRepository implements domain.BudgetAllocationRepository using PostgreSQL
type BudgetAllocationRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetAllocationRepository creates a new BudgetAllocationRepository
func NewBudgetAllocationRepository(pool *pgxpool.Pool) *BudgetAllocationRepository {
	return &BudgetAllocationRepository{pool: pool}
}

// ListByUser retrieves all budget allocations of a user
func (r *BudgetAllocationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.BudgetAllocation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, category_id, amount_cents, currency, period_start, period_end
		 FROM budget_allocations WHERE user_id = $1 ORDER BY period_start, id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.BudgetAllocation, error) {
		var (
			allocation  domain.BudgetAllocation
			user        pgtype.UUID
			periodStart pgtype.Date
			periodEnd   pgtype.Date
		)
		if err := row.Scan(&allocation.ID, &user, &allocation.CategoryID, &allocation.AmountCents,
			&allocation.Currency, &periodStart, &periodEnd); err != nil {
			return nil, err
		}
		allocation.UserID = pgUUIDToUUID(user)
		allocation.PeriodStart = pgDateToTime(periodStart)
		allocation.PeriodEnd = pgDateToTime(periodEnd)
		return &allocation, nil
	})
}
