package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	IsActive    bool            `json:"is_active" db:"is_active"`
}

// PickupPoint is a physical fulfillment point holding its own stock per
// product. Inactive points can't be chosen at checkout.
type PickupPoint struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Address      string    `json:"address" db:"address"`
	WorkingHours string    `json:"working_hours" db:"working_hours"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
