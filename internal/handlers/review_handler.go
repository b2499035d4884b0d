package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/httpapi"
	"github.com/ksen61/kursovaya4petshop2/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return httpapi.BadRequest(c, err.Error(), nil)
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequest(c, "invalid product id", nil)
	}

	var request ReviewRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequest(c, "invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	review, err := h.reviews.CreateReview(c.Context(), uid, productID, request.Rating, request.Text)
	if err != nil {
		return respondError(c, err)
	}
	return httpapi.Created(c, "review created", mapReview(review))
}

func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpapi.BadRequest(c, "invalid product id", nil)
	}

	reviews, err := h.reviews.ListReviews(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = mapReview(&reviews[i])
	}
	return httpapi.Success(c, "reviews retrieved successfully", responses)
}
