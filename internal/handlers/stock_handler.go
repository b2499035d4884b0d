package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
	"github.com/ksen61/kursovaya4petshop2/internal/service"
)

type StockHandler struct {
	stocks *service.StockService
}

func NewStockHandler(stocks *service.StockService) *StockHandler {
	return &StockHandler{stocks: stocks}
}

func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequest(c, "invalid product id", nil)
	}

	view, err := h.stocks.GetStock(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "stock retrieved successfully", view)
}

// Restock increments a stock record, creating it at zero first if the
// product has never been stocked at that point.
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	actorID, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	var request RestockRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequest(c, "invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if request.ProductID == uuid.Nil || request.PickupPointID == uuid.Nil {
		return httpapi.BadRequest(c, "product id and pickup point id are required", nil)
	}

	record, err := h.stocks.Restock(c.Context(), actorID, request.ProductID, request.PickupPointID, request.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "stock replenished", record)
}
