package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type StockStore interface {
	Restock(ctx context.Context, productID, pickupPointID uuid.UUID, delta int) (*domain.StockRecord, error)
	Levels(ctx context.Context, productID uuid.UUID) ([]domain.StockLevel, error)
}

type StockService struct {
	stocks   StockStore
	products ProductCatalog
	audit    AuditRecorder
	log      zerolog.Logger
}

func NewStockService(stocks StockStore, products ProductCatalog, audit AuditRecorder, log zerolog.Logger) *StockService {
	return &StockService{
		stocks:   stocks,
		products: products,
		audit:    audit,
		log:      log.With().Str("component", "stocks").Logger(),
	}
}

// Restock is the administrative increment: the counterpart of the checkout
// decrement, and the only other writer of stock quantities.
func (s *StockService) Restock(ctx context.Context, actorID, productID, pickupPointID uuid.UUID, delta int) (*domain.StockRecord, error) {
	if delta < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	if _, err := s.products.ActiveByID(ctx, productID); err != nil {
		return nil, err
	}

	record, err := s.stocks.Restock(ctx, productID, pickupPointID, delta)
	if err != nil {
		return nil, err
	}

	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		ActorID:    &actorID,
		TableName:  "product_stocks",
		RowID:      productID,
		Action:     domain.AuditActionUpdate,
		OldData:    map[string]interface{}{"quantity": record.Quantity - delta},
		NewData:    map[string]interface{}{"quantity": record.Quantity},
		ActionTime: time.Now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("product_id", productID.String()).Msg("audit record failed")
	}

	s.log.Info().
		Str("product_id", productID.String()).
		Str("pickup_point_id", pickupPointID.String()).
		Int("delta", delta).
		Int("quantity", record.Quantity).
		Msg("stock replenished")

	return record, nil
}

// StockView is the per-point breakdown plus the aggregate the cart uses.
type StockView struct {
	ProductID uuid.UUID           `json:"product_id"`
	Total     int                 `json:"total"`
	Levels    []domain.StockLevel `json:"levels"`
}

func (s *StockService) GetStock(ctx context.Context, productID uuid.UUID) (*StockView, error) {
	if _, err := s.products.ActiveByID(ctx, productID); err != nil {
		return nil, err
	}

	levels, err := s.stocks.Levels(ctx, productID)
	if err != nil {
		return nil, err
	}

	view := &StockView{ProductID: productID, Levels: levels}
	for _, l := range levels {
		view.Total += l.Quantity
	}
	return view, nil
}
