package handlers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
	"github.com/ksen61/kursovaya4petshop2/internal/messaging"
)

type HealthHandler struct {
	db     *sql.DB
	rabbit *messaging.Client
}

func NewHealthHandler(db *sql.DB, rabbit *messaging.Client) *HealthHandler {
	return &HealthHandler{db: db, rabbit: rabbit}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "healthy"
	if err := h.db.PingContext(c.Context()); err != nil {
		dbStatus = "unreachable"
	}

	rabbitStatus := "healthy"
	if !h.rabbit.IsConnected() {
		rabbitStatus = "disconnected"
	}

	return httpapi.Success(c, "Shop service is healthy", map[string]interface{}{
		"service":  "shop-service",
		"status":   "healthy",
		"database": dbStatus,
		"rabbitmq": rabbitStatus,
	})
}
