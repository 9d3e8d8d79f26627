package postgres

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// ListByUser retrieves all goals of a user
func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, target_amount_cents, target_hours, currency
		 FROM goals WHERE user_id = $1 ORDER BY id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Goal, error) {
		var (
			goal         domain.Goal
			user         pgtype.UUID
			targetAmount pgtype.Int8
			targetHours  pgtype.Float8
		)
		if err := row.Scan(&goal.ID, &user, &goal.Name, &targetAmount, &targetHours, &goal.Currency); err != nil {
			return nil, err
		}
		goal.UserID = pgUUIDToUUID(user)
		goal.TargetAmountCents = pgInt8ToPtr(targetAmount)
		goal.TargetHours = pgFloat8ToPtr(targetHours)
		return &goal, nil
	})
}

// ListContributionsByUser retrieves the contributions to every goal of a user
func (r *GoalRepository) ListContributionsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GoalContribution, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.goal_id, c.contributed_at, c.amount_cents, c.hours
		 FROM goal_contributions c
		 JOIN goals g ON g.id = c.goal_id
		 WHERE g.user_id = $1
		 ORDER BY c.contributed_at, c.id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.GoalContribution, error) {
		var (
			contribution  domain.GoalContribution
			contributedAt pgtype.Date
			amount        pgtype.Int8
			hours         pgtype.Float8
		)
		if err := row.Scan(&contribution.ID, &contribution.GoalID, &contributedAt, &amount, &hours); err != nil {
			return nil, err
		}
		contribution.ContributedAt = pgDateToTime(contributedAt)
		contribution.AmountCents = pgInt8ToPtr(amount)
		contribution.Hours = pgFloat8ToPtr(hours)
		return &contribution, nil
	})
}
