package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DurableAsset is a purchased object that costs maintenance and saves time over its life
type DurableAsset struct {
	ID                       int32     `json:"id"`
	UserID                   uuid.UUID `json:"userId"`
	Name                     string    `json:"name"`
	PriceCents               int64     `json:"priceCents"`
	Currency                 string    `json:"currency"`
	PurchaseDate             time.Time `json:"purchaseDate"`
	ExpectedLifeMonths       int       `json:"expectedLifeMonths"`
	MaintenanceCentsPerMonth int64     `json:"maintenanceCentsPerMonth"`
	HoursSavedPerMonth       float64   `json:"hoursSavedPerMonth"`
	CategoryID               *int32    `json:"categoryId,omitempty"`
}

// Validate rejects rows the engine cannot compute with
func (a *DurableAsset) Validate() error {
	if a.PurchaseDate.IsZero() {
		return rowError("asset", a.ID, "purchase_date is required")
	}
	if err := ValidateCurrency(a.Currency); err != nil {
		return rowError("asset", a.ID, err.Error())
	}
	if a.ExpectedLifeMonths < 0 {
		return rowError("asset", a.ID, "expected_life_months must not be negative")
	}
	return nil
}

type DurableAssetRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*DurableAsset, error)
}
