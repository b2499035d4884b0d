package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
	"github.com/ksen61/kursovaya4petshop2/internal/service"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	cart, err := h.cart.GetCart(c.Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "cart retrieved successfully", mapCart(cart))
}

func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	var request AddCartLineRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequest(c, "invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if request.ProductID == uuid.Nil {
		return httpapi.BadRequest(c, "product id is required", nil)
	}

	cart, err := h.cart.AddToCart(c.Context(), uid, request.ProductID, request.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Created(c, "product added to cart", mapCart(cart))
}

func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	lineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequest(c, "invalid cart line id", nil)
	}

	var request UpdateCartLineRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequest(c, "invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	cart, err := h.cart.UpdateQuantity(c.Context(), uid, lineID, request.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "cart line updated", mapCart(cart))
}

func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	lineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequest(c, "invalid cart line id", nil)
	}

	cart, err := h.cart.RemoveLine(c.Context(), uid, lineID)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "cart line removed", mapCart(cart))
}
