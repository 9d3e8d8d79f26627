package postgres

import (
	"context"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DurableAssetRepository implements domain.DurableAssetRepository using PostgreSQL
type DurableAssetRepository struct {
	pool *pgxpool.Pool
}

// NewDurableAssetRepository creates a new DurableAssetRepository
func NewDurableAssetRepository(pool *pgxpool.Pool) *DurableAssetRepository {
	return &DurableAssetRepository{pool: pool}
}

// ListByUser retrieves all durable assets of a user
func (r *DurableAssetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DurableAsset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, price_cents, currency, purchase_date, expected_life_months,
		        maintenance_cents_per_month, hours_saved_per_month, category_id
		 FROM durable_assets WHERE user_id = $1 ORDER BY purchase_date, id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.DurableAsset, error) {
		var (
			asset        domain.DurableAsset
			user         pgtype.UUID
			purchaseDate pgtype.Date
			lifeMonths   int32
			categoryID   pgtype.Int4
		)
		if err := row.Scan(&asset.ID, &user, &asset.Name, &asset.PriceCents, &asset.Currency, &purchaseDate,
			&lifeMonths, &asset.MaintenanceCentsPerMonth, &asset.HoursSavedPerMonth, &categoryID); err != nil {
			return nil, err
		}
		asset.UserID = pgUUIDToUUID(user)
		asset.PurchaseDate = pgDateToTime(purchaseDate)
		asset.ExpectedLifeMonths = int(lifeMonths)
		asset.CategoryID = pgInt4ToPtr(categoryID)
		return &asset, nil
	})
}
