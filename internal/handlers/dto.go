package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type CheckoutRequest struct {
	PickupPointID uuid.UUID `json:"pickup_point_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
}

type CheckoutResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	TotalPrice  string    `json:"total_price"`
	Status      string    `json:"status"`
}

type AddCartLineRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

type CartLineResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total string             `json:"total"`
}

type OrderLineResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
}

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	PickupPointID uuid.UUID           `json:"pickup_point_id"`
	Status        string              `json:"status"`
	TotalPrice    string              `json:"total_price"`
	FirstName     string              `json:"first_name"`
	LastName      string              `json:"last_name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Lines         []OrderLineResponse `json:"lines"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type RestockRequest struct {
	ProductID     uuid.UUID `json:"product_id"`
	PickupPointID uuid.UUID `json:"pickup_point_id"`
	Quantity      int       `json:"quantity"`
}

type ReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func mapCart(cart *domain.Cart) CartResponse {
	resp := CartResponse{
		Lines: make([]CartLineResponse, len(cart.Lines)),
		Total: cart.Total().StringFixed(2),
	}
	for i, l := range cart.Lines {
		resp.Lines[i] = CartLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal().StringFixed(2),
		}
	}
	return resp
}

func mapOrder(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		PickupPointID: order.PickupPointID,
		Status:        string(order.Status),
		TotalPrice:    order.TotalPrice.StringFixed(2),
		FirstName:     order.FirstName,
		LastName:      order.LastName,
		Email:         order.Email,
		Phone:         order.Phone,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		Lines:         make([]OrderLineResponse, len(order.Lines)),
	}
	for i, l := range order.Lines {
		resp.Lines[i] = OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			Subtotal:    l.Subtotal().StringFixed(2),
		}
	}
	return resp
}

func mapReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}
