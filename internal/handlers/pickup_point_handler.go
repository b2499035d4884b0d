package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
)

type PickupPointLister interface {
	ListActive(ctx context.Context) ([]domain.PickupPoint, error)
}

type PickupPointHandler struct {
	points PickupPointLister
}

func NewPickupPointHandler(points PickupPointLister) *PickupPointHandler {
	return &PickupPointHandler{points: points}
}

func (h *PickupPointHandler) ListPickupPoints(c *fiber.Ctx) error {
	points, err := h.points.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Success(c, "pickup points retrieved successfully", points)
}
