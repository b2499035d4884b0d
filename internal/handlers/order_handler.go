package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
	"github.com/ksen61/kursovaya4petshop2/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequest(c, "invalid order id", nil)
	}

	order, err := h.orders.GetOrder(c.Context(), uid, orderID)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "order retrieved successfully", mapOrder(order))
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	orders, err := h.orders.ListOrders(c.Context(), uid)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = mapOrder(o)
	}
	return httpapi.Success(c, "orders retrieved successfully", responses)
}

// UpdateStatus is the administrative lifecycle advance. The actor comes from
// the same identity header; role enforcement sits in the auth layer in front.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	actorID, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequest(c, "invalid order id", nil)
	}

	var request UpdateStatusRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequest(c, "invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	order, err := h.orders.UpdateStatus(c.Context(), actorID, orderID, domain.OrderStatus(request.Status))
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "order status updated", mapOrder(order))
}
