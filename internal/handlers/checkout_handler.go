package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
	"github.com/ksen61/kursovaya4petshop2/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	var request CheckoutRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequest(c, "invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if request.PickupPointID == uuid.Nil {
		return httpapi.BadRequest(c, "pickup point is required", nil)
	}

	contact := domain.ContactInfo{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Phone:     request.Phone,
	}

	order, err := h.checkout.PlaceOrder(c.Context(), uid, request.PickupPointID, contact)
	if err != nil {
		return respondError(c, err)
	}

	return httpapi.Created(c, "order placed successfully", CheckoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalPrice:  order.TotalPrice.StringFixed(2),
		Status:      string(order.Status),
	})
}
