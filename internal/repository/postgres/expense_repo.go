package postgres

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// ListByUser retrieves all expenses of a user, including inactive ones
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, amount_cents, currency, frequency, start_date, end_date, is_active, category_id
		 FROM expenses WHERE user_id = $1 ORDER BY start_date, id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Expense, error) {
		var (
			expense    domain.Expense
			user       pgtype.UUID
			frequency  string
			startDate  pgtype.Date
			endDate    pgtype.Date
			isActive   pgtype.Bool
			categoryID pgtype.Int4
		)
		if err := row.Scan(&expense.ID, &user, &expense.AmountCents, &expense.Currency, &frequency,
			&startDate, &endDate, &isActive, &categoryID); err != nil {
			return nil, err
		}
		expense.UserID = pgUUIDToUUID(user)
		expense.Frequency = domain.Frequency(frequency)
		expense.StartDate = pgDateToTime(startDate)
		expense.EndDate = pgDateToTimePtr(endDate)
		expense.IsActive = pgBoolToPtr(isActive)
		expense.CategoryID = pgInt4ToPtr(categoryID)
		return &expense, nil
	})
}
