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

func newStockFixture() (*StockService, *mockStockStore, *mockAudit, uuid.UUID) {
	productID := uuid.New()
	catalog := &mockCatalog{
		products: map[uuid.UUID]*domain.Product{
			productID: {ID: productID, Name: "Dog food 5kg", Price: decimal.RequireFromString("100.00"), IsActive: true},
		},
	}
	stocks := &mockStockStore{records: make(map[stockKey]int)}
	audit := &mockAudit{}
	return NewStockService(stocks, catalog, audit, zerolog.Nop()), stocks, audit, productID
}

func TestRestock_IncrementsAndAudits(t *testing.T) {
	svc, _, audit, productID := newStockFixture()
	actorID := uuid.New()
	pointID := uuid.New()

	record, err := svc.Restock(context.Background(), actorID, productID, pointID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, record.Quantity)

	record, err = svc.Restock(context.Background(), actorID, productID, pointID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, record.Quantity)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, "product_stocks", audit.entries[1].TableName)
	assert.Equal(t, map[string]interface{}{"quantity": 10}, audit.entries[1].OldData)
	assert.Equal(t, map[string]interface{}{"quantity": 15}, audit.entries[1].NewData)
}

func TestRestock_RejectsNonPositiveDelta(t *testing.T) {
	svc, _, _, productID := newStockFixture()

	for _, delta := range []int{0, -3} {
		_, err := svc.Restock(context.Background(), uuid.New(), productID, uuid.New(), delta)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "delta %d", delta)
	}
}

func TestRestock_UnknownProduct(t *testing.T) {
	svc, _, _, _ := newStockFixture()

	_, err := svc.Restock(context.Background(), uuid.New(), uuid.New(), uuid.New(), 5)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetStock_SumsLevels(t *testing.T) {
	svc, stocks, _, productID := newStockFixture()
	stocks.records[stockKey{productID, uuid.New()}] = 7
	stocks.records[stockKey{productID, uuid.New()}] = 4
	stocks.records[stockKey{uuid.New(), uuid.New()}] = 99 // another product

	view, err := svc.GetStock(context.Background(), productID)

	require.NoError(t, err)
	assert.Equal(t, 11, view.Total)
	assert.Len(t, view.Levels, 2)
}
