package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
}

type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: requestID(c),
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: requestID(c),
	})
}

func BadRequest(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return failure(c, fiber.StatusBadRequest, "BAD_REQUEST", message, details)
}

func NotFound(c *fiber.Ctx, message string) error {
	return failure(c, fiber.StatusNotFound, "NOT_FOUND", message, nil)
}

func Conflict(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return failure(c, fiber.StatusConflict, "CONFLICT", message, details)
}

func GatewayTimeout(c *fiber.Ctx, message string) error {
	return failure(c, fiber.StatusGatewayTimeout, "TIMEOUT", message, nil)
}

func InternalServerError(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return failure(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, details)
}

func failure(c *fiber.Ctx, status int, code, message string, details map[string]interface{}) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
		RequestID: requestID(c),
	})
}

func requestID(c *fiber.Ctx) string {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Set("X-Request-ID", id)
	}
	return id
}
