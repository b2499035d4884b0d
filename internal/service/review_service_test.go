package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

func newReviewFixture(purchased bool) (*ReviewService, *mockReviewStore, uuid.UUID) {
	productID := uuid.New()
	catalog := &mockCatalog{
		products: map[uuid.UUID]*domain.Product{
			productID: {ID: productID, Name: "Cat scratcher", Price: decimal.RequireFromString("700.00"), IsActive: true},
		},
	}
	reviews := &mockReviewStore{purchased: map[uuid.UUID]bool{productID: purchased}}
	return NewReviewService(reviews, catalog, zerolog.Nop()), reviews, productID
}

func TestCreateReview_RequiresPurchase(t *testing.T) {
	svc, _, productID := newReviewFixture(false)

	_, err := svc.CreateReview(context.Background(), uuid.New(), productID, 5, "great")
	assert.ErrorIs(t, err, domain.ErrReviewNotAllowed)
}

func TestCreateReview_Success(t *testing.T) {
	svc, reviews, productID := newReviewFixture(true)
	userID := uuid.New()

	review, err := svc.CreateReview(context.Background(), userID, productID, 4, "  solid, cat approves  ")

	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "solid, cat approves", review.Text)
	assert.Len(t, reviews.reviews, 1)
}

func TestCreateReview_OnePerUserAndProduct(t *testing.T) {
	svc, _, productID := newReviewFixture(true)
	userID := uuid.New()

	_, err := svc.CreateReview(context.Background(), userID, productID, 5, "first")
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), userID, productID, 3, "second")
	assert.ErrorIs(t, err, domain.ErrReviewExists)
}

func TestCreateReview_RatingBounds(t *testing.T) {
	svc, _, productID := newReviewFixture(true)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateReview(context.Background(), uuid.New(), productID, rating, "x")
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "rating %d", rating)
	}
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	svc, _, _ := newReviewFixture(true)

	_, err := svc.CreateReview(context.Background(), uuid.New(), uuid.New(), 5, "x")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListReviews(t *testing.T) {
	svc, _, productID := newReviewFixture(true)

	_, err := svc.CreateReview(context.Background(), uuid.New(), productID, 5, "a")
	require.NoError(t, err)
	_, err = svc.CreateReview(context.Background(), uuid.New(), productID, 2, "b")
	require.NoError(t, err)

	got, err := svc.ListReviews(context.Background(), productID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
