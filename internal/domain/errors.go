package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrLocationNotFound   = errors.New("pickup point not found or inactive")
	ErrEmptyCart          = errors.New("cart is empty, nothing to check out")
	ErrTransactionTimeout = errors.New("checkout transaction timed out")
	ErrProductNotFound    = errors.New("product not found or inactive")
	ErrCartLineNotFound   = errors.New("cart line not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrIllegalTransition  = errors.New("illegal order status transition")
	ErrReviewNotAllowed   = errors.New("only customers who bought this product can review it")
	ErrReviewExists       = errors.New("you have already reviewed this product")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrUnknownStatus      = errors.New("unknown order status")
)

type InvalidContactError struct {
	Field  string
	Reason string
}

func (e *InvalidContactError) Error() string {
	return fmt.Sprintf("invalid contact info: %s", e.Reason)
}

// InsufficientStockError names the product and how much is actually left so
// the customer can adjust the cart instead of guessing.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d of %q available at the chosen pickup point, %d requested",
		e.Available, e.ProductName, e.Requested)
}

// StockMissingError means the product is not stocked at the chosen pickup
// point at all, as opposed to stocked but short.
type StockMissingError struct {
	ProductID     uuid.UUID
	ProductName   string
	PickupPointID uuid.UUID
}

func (e *StockMissingError) Error() string {
	return fmt.Sprintf("%q is not stocked at the chosen pickup point", e.ProductName)
}

// PersistenceError wraps unexpected durable-store failures so callers can
// tell them apart from the business failure modes above.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
