package domain

import "github.com/google/uuid"

// StockRecord is the per-(product, pickup point) available quantity. The
// quantity is mutated only by the checkout reservation (conditional decrement)
// and administrative restock; it can never go below zero.
type StockRecord struct {
	ProductID     uuid.UUID `json:"product_id" db:"product_id"`
	PickupPointID uuid.UUID `json:"pickup_point_id" db:"pickup_point_id"`
	Quantity      int       `json:"quantity" db:"quantity"`
}

// StockLevel is a read-model row for the stock view: one pickup point's
// quantity with its address resolved.
type StockLevel struct {
	PickupPointID uuid.UUID `json:"pickup_point_id"`
	Address       string    `json:"address"`
	Quantity      int       `json:"quantity"`
}
