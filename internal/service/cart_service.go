package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type CartStore interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	UpsertLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (int, error)
	LineQuantity(ctx context.Context, userID, productID uuid.UUID) (int, error)
	GetLine(ctx context.Context, userID, lineID uuid.UUID) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, userID, lineID uuid.UUID) error
}

type ProductCatalog interface {
	ActiveByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	AggregateStock(ctx context.Context, productID uuid.UUID) (int, error)
}

type CartService struct {
	carts    CartStore
	products ProductCatalog
	log      zerolog.Logger
}

func NewCartService(carts CartStore, products ProductCatalog, log zerolog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		log:      log.With().Str("component", "cart").Logger(),
	}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return s.carts.GetCart(ctx, userID)
}

// AddToCart upserts a line, capping the line's total quantity by the
// product's stock summed across every pickup point. The per-point check
// happens later, at checkout, against the point the customer picks.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.ActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	available, err := s.products.AggregateStock(ctx, productID)
	if err != nil {
		return nil, err
	}

	current, err := s.carts.LineQuantity(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if current+quantity > available {
		return nil, &domain.InsufficientStockError{
			ProductID:   productID,
			ProductName: product.Name,
			Available:   available,
			Requested:   current + quantity,
		}
	}

	if _, err := s.carts.UpsertLine(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("cart line added")

	return s.carts.GetCart(ctx, userID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	line, err := s.carts.GetLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}

	available, err := s.products.AggregateStock(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > available {
		return nil, &domain.InsufficientStockError{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Available:   available,
			Requested:   quantity,
		}
	}

	if err := s.carts.UpdateQuantity(ctx, userID, lineID, quantity); err != nil {
		return nil, err
	}
	return s.carts.GetCart(ctx, userID)
}

func (s *CartService) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) (*domain.Cart, error) {
	if err := s.carts.DeleteLine(ctx, userID, lineID); err != nil {
		return nil, err
	}
	return s.carts.GetCart(ctx, userID)
}
