package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
)

// userID reads the identity the auth layer in front of this service puts on
// every request. There is no ambient request user; identity is always passed
// explicitly.
func userID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get("X-User-ID")
	if raw == "" {
		return uuid.Nil, errors.New("missing X-User-ID header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid X-User-ID header")
	}
	return id, nil
}

// respondError maps the domain error taxonomy onto HTTP statuses. Every
// failure mode keeps its specific message so the customer can act on it.
func respondError(c *fiber.Ctx, err error) error {
	var contactErr *domain.InvalidContactError
	var stockErr *domain.InsufficientStockError
	var missingErr *domain.StockMissingError

	switch {
	case errors.As(err, &contactErr):
		return httpapi.BadRequest(c, contactErr.Error(), map[string]interface{}{
			"field": contactErr.Field,
		})
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrUnknownStatus):
		return httpapi.BadRequest(c, err.Error(), nil)
	case errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCartLineNotFound):
		return httpapi.NotFound(c, err.Error())
	case errors.As(err, &stockErr):
		return httpapi.Conflict(c, stockErr.Error(), map[string]interface{}{
			"product_id": stockErr.ProductID,
			"available":  stockErr.Available,
			"requested":  stockErr.Requested,
		})
	case errors.As(err, &missingErr):
		return httpapi.Conflict(c, missingErr.Error(), map[string]interface{}{
			"product_id":      missingErr.ProductID,
			"pickup_point_id": missingErr.PickupPointID,
		})
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrReviewNotAllowed),
		errors.Is(err, domain.ErrReviewExists):
		return httpapi.Conflict(c, err.Error(), nil)
	case errors.Is(err, domain.ErrTransactionTimeout):
		return httpapi.GatewayTimeout(c, err.Error())
	default:
		return httpapi.InternalServerError(c, "internal server error", nil)
	}
}
