package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type ReviewStore interface {
	HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error)
}

type ReviewService struct {
	reviews  ReviewStore
	products ProductCatalog
	log      zerolog.Logger
}

func NewReviewService(reviews ReviewStore, products ProductCatalog, log zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		log:      log.With().Str("component", "reviews").Logger(),
	}
}

// CreateReview accepts a review only from a customer whose order history
// contains the product, and at most one per (user, product).
func (s *ReviewService) CreateReview(ctx context.Context, userID, productID uuid.UUID, rating int, text string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	if _, err := s.products.ActiveByID(ctx, productID); err != nil {
		return nil, err
	}

	purchased, err := s.reviews.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, domain.ErrReviewNotAllowed
	}

	exists, err := s.reviews.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrReviewExists
	}

	review := &domain.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", productID.String()).
		Str("user_id", userID.String()).
		Int("rating", rating).
		Msg("review created")

	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}
