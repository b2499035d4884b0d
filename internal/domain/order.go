package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusReceived   OrderStatus = "received"
)

// statusFlow is the only legal progression; an order never moves backwards
// and never skips a step.
var statusFlow = map[OrderStatus]OrderStatus{
	OrderStatusProcessing: OrderStatusInProgress,
	OrderStatusInProgress: OrderStatusCompleted,
	OrderStatusCompleted:  OrderStatusReceived,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusInProgress, OrderStatusCompleted, OrderStatusReceived:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return statusFlow[s] == next
}

type Order struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	OrderNumber   string          `json:"order_number" db:"order_number"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	PickupPointID uuid.UUID       `json:"pickup_point_id" db:"pickup_point_id"`
	Status        OrderStatus     `json:"status" db:"status"`
	TotalPrice    decimal.Decimal `json:"total_price" db:"total_price"`
	FirstName     string          `json:"first_name" db:"first_name"`
	LastName      string          `json:"last_name" db:"last_name"`
	Email         string          `json:"email" db:"email"`
	Phone         string          `json:"phone" db:"phone"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	Lines         []OrderLine     `json:"lines"`
}

// OrderLine freezes the price the customer saw at checkout. It is never
// updated after the order commits, even if the catalog price changes.
type OrderLine struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewOrderNumber returns 32 hex chars (128 random bits) from a v4 UUID.
func NewOrderNumber() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// NewOrder builds an order from a cart snapshot, capturing each line's
// current unit price and summing the total at this instant.
func NewOrder(userID, pickupPointID uuid.UUID, contact ContactInfo, cartLines []CartLine) *Order {
	orderID := uuid.New()
	now := time.Now()

	lines := make([]OrderLine, len(cartLines))
	total := decimal.Zero
	for i, cl := range cartLines {
		lines[i] = OrderLine{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   cl.ProductID,
			ProductName: cl.ProductName,
			Quantity:    cl.Quantity,
			UnitPrice:   cl.UnitPrice,
		}
		total = total.Add(lines[i].Subtotal())
	}

	return &Order{
		ID:            orderID,
		OrderNumber:   NewOrderNumber(),
		UserID:        userID,
		PickupPointID: pickupPointID,
		Status:        OrderStatusProcessing,
		TotalPrice:    total.Round(2),
		FirstName:     contact.FirstName,
		LastName:      contact.LastName,
		Email:         contact.Email,
		Phone:         contact.Phone,
		CreatedAt:     now,
		UpdatedAt:     now,
		Lines:         lines,
	}
}
