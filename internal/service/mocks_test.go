package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/events"
	"github.com/ksen61/kursovaya4petshop2/internal/repository"
)

type stockKey struct {
	productID     uuid.UUID
	pickupPointID uuid.UUID
}

// memCheckoutStore is an in-memory repository.CheckoutTxRunner. One mutex
// serializes transactions the way row locks do in Postgres; writes go into a
// journal that is applied to the shared state only when the closure succeeds.
type memCheckoutStore struct {
	mu     sync.Mutex
	points map[uuid.UUID]domain.PickupPoint
	carts  map[uuid.UUID][]domain.CartLine
	stocks map[stockKey]int
	orders []*domain.Order

	// AfterSnapshot, when set, runs right after CartSnapshot inside a
	// transaction. It mutates the shared state directly, simulating a
	// concurrent request landing mid-checkout.
	AfterSnapshot func(s *memCheckoutStore)

	forcedErr error
}

func newMemCheckoutStore() *memCheckoutStore {
	return &memCheckoutStore{
		points: make(map[uuid.UUID]domain.PickupPoint),
		carts:  make(map[uuid.UUID][]domain.CartLine),
		stocks: make(map[stockKey]int),
	}
}

func (m *memCheckoutStore) AddPoint(p domain.PickupPoint) {
	m.points[p.ID] = p
}

func (m *memCheckoutStore) AddCartLine(l domain.CartLine) {
	m.carts[l.UserID] = append(m.carts[l.UserID], l)
}

func (m *memCheckoutStore) SetStock(productID, pickupPointID uuid.UUID, qty int) {
	m.stocks[stockKey{productID, pickupPointID}] = qty
}

func (m *memCheckoutStore) Stock(productID, pickupPointID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stocks[stockKey{productID, pickupPointID}]
}

func (m *memCheckoutStore) CartLines(userID uuid.UUID) []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartLine(nil), m.carts[userID]...)
}

func (m *memCheckoutStore) Orders() []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Order(nil), m.orders...)
}

func (m *memCheckoutStore) InTx(ctx context.Context, fn func(repository.CheckoutStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forcedErr != nil {
		return m.forcedErr
	}

	tx := &memCheckoutTx{
		base:       m,
		reserved:   make(map[stockKey]int),
		deletedIDs: make(map[uuid.UUID]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// The non-transactional reads delegate to a throwaway tx view.
func (m *memCheckoutStore) ActivePickupPoint(ctx context.Context, id uuid.UUID) (*domain.PickupPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memCheckoutTx{base: m}).ActivePickupPoint(ctx, id)
}

func (m *memCheckoutStore) CartSnapshot(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memCheckoutTx{base: m}).CartSnapshot(ctx, userID)
}

func (m *memCheckoutStore) ReserveStock(context.Context, domain.CartLine, uuid.UUID) error {
	panic("ReserveStock outside a transaction")
}

func (m *memCheckoutStore) CreateOrder(context.Context, *domain.Order) error {
	panic("CreateOrder outside a transaction")
}

func (m *memCheckoutStore) DeleteCartLines(context.Context, uuid.UUID, []uuid.UUID) error {
	panic("DeleteCartLines outside a transaction")
}

type memCheckoutTx struct {
	base       *memCheckoutStore
	reserved   map[stockKey]int
	order      *domain.Order
	deleteUser uuid.UUID
	deletedIDs map[uuid.UUID]bool
}

func (t *memCheckoutTx) commit() {
	for key, qty := range t.reserved {
		t.base.stocks[key] -= qty
	}
	if t.order != nil {
		t.base.orders = append(t.base.orders, t.order)
	}
	if len(t.deletedIDs) > 0 {
		var kept []domain.CartLine
		for _, l := range t.base.carts[t.deleteUser] {
			if !t.deletedIDs[l.ID] {
				kept = append(kept, l)
			}
		}
		t.base.carts[t.deleteUser] = kept
	}
}

func (t *memCheckoutTx) ActivePickupPoint(_ context.Context, id uuid.UUID) (*domain.PickupPoint, error) {
	p, ok := t.base.points[id]
	if !ok || !p.IsActive {
		return nil, domain.ErrLocationNotFound
	}
	return &p, nil
}

func (t *memCheckoutTx) CartSnapshot(_ context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	snapshot := append([]domain.CartLine(nil), t.base.carts[userID]...)
	if t.base.AfterSnapshot != nil {
		hook := t.base.AfterSnapshot
		t.base.AfterSnapshot = nil
		hook(t.base)
	}
	return snapshot, nil
}

func (t *memCheckoutTx) ReserveStock(_ context.Context, line domain.CartLine, pickupPointID uuid.UUID) error {
	key := stockKey{line.ProductID, pickupPointID}
	available, ok := t.base.stocks[key]
	if !ok {
		return &domain.StockMissingError{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			PickupPointID: pickupPointID,
		}
	}
	available -= t.reserved[key]
	if available < line.Quantity {
		return &domain.InsufficientStockError{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Available:   available,
			Requested:   line.Quantity,
		}
	}
	t.reserved[key] += line.Quantity
	return nil
}

func (t *memCheckoutTx) CreateOrder(_ context.Context, order *domain.Order) error {
	t.order = order
	return nil
}

func (t *memCheckoutTx) DeleteCartLines(_ context.Context, userID uuid.UUID, lineIDs []uuid.UUID) error {
	t.deleteUser = userID
	for _, id := range lineIDs {
		t.deletedIDs[id] = true
	}
	return nil
}

func (t *memCheckoutTx) InTx(context.Context, func(repository.CheckoutStore) error) error {
	panic("nested transaction")
}

// mockNotifier records confirmations and optionally fails them.
type mockNotifier struct {
	mu        sync.Mutex
	orders    []*domain.Order
	addresses []string
	err       error
}

func (m *mockNotifier) OrderConfirmed(order *domain.Order, pickupAddress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	m.addresses = append(m.addresses, pickupAddress)
	return m.err
}

func (m *mockNotifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// mockCartStore backs CartService tests with a flat line list.
type mockCartStore struct {
	lines     []domain.CartLine
	updateErr error
	deleteErr error
}

func (m *mockCartStore) GetCart(_ context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart := &domain.Cart{UserID: userID}
	for _, l := range m.lines {
		if l.UserID == userID {
			cart.Lines = append(cart.Lines, l)
		}
	}
	return cart, nil
}

func (m *mockCartStore) UpsertLine(_ context.Context, userID, productID uuid.UUID, quantity int) (int, error) {
	for i, l := range m.lines {
		if l.UserID == userID && l.ProductID == productID {
			m.lines[i].Quantity += quantity
			return m.lines[i].Quantity, nil
		}
	}
	m.lines = append(m.lines, domain.CartLine{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	return quantity, nil
}

func (m *mockCartStore) LineQuantity(_ context.Context, userID, productID uuid.UUID) (int, error) {
	for _, l := range m.lines {
		if l.UserID == userID && l.ProductID == productID {
			return l.Quantity, nil
		}
	}
	return 0, nil
}

func (m *mockCartStore) GetLine(_ context.Context, userID, lineID uuid.UUID) (*domain.CartLine, error) {
	for _, l := range m.lines {
		if l.UserID == userID && l.ID == lineID {
			line := l
			return &line, nil
		}
	}
	return nil, domain.ErrCartLineNotFound
}

func (m *mockCartStore) UpdateQuantity(_ context.Context, userID, lineID uuid.UUID, quantity int) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, l := range m.lines {
		if l.UserID == userID && l.ID == lineID {
			m.lines[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrCartLineNotFound
}

func (m *mockCartStore) DeleteLine(_ context.Context, userID, lineID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, l := range m.lines {
		if l.UserID == userID && l.ID == lineID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrCartLineNotFound
}

// mockCatalog serves ProductCatalog from two maps.
type mockCatalog struct {
	products map[uuid.UUID]*domain.Product
	stock    map[uuid.UUID]int
}

func (m *mockCatalog) ActiveByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok || !p.IsActive {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *mockCatalog) AggregateStock(_ context.Context, productID uuid.UUID) (int, error) {
	return m.stock[productID], nil
}

// mockOrderStore serves OrderService tests.
type mockOrderStore struct {
	orders    map[uuid.UUID]*domain.Order
	updateErr error
}

func (m *mockOrderStore) ByID(_ context.Context, orderID uuid.UUID) (*domain.Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderStore) ByIDForUser(_ context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	o, ok := m.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) UpdateStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	o, ok := m.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

// mockAudit records audit entries; err makes Record fail.
type mockAudit struct {
	entries []*domain.AuditEntry
	err     error
}

func (m *mockAudit) Record(_ context.Context, entry *domain.AuditEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

// mockReviewStore serves ReviewService tests.
type mockReviewStore struct {
	purchased map[uuid.UUID]bool // keyed by product
	reviews   []*domain.Review
}

func (m *mockReviewStore) HasPurchased(_ context.Context, _, productID uuid.UUID) (bool, error) {
	return m.purchased[productID], nil
}

func (m *mockReviewStore) Exists(_ context.Context, userID, productID uuid.UUID) (bool, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewStore) Create(_ context.Context, review *domain.Review) error {
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewStore) ListByProduct(_ context.Context, productID uuid.UUID) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// mockStockStore serves StockService tests.
type mockStockStore struct {
	records map[stockKey]int
}

func (m *mockStockStore) Restock(_ context.Context, productID, pickupPointID uuid.UUID, delta int) (*domain.StockRecord, error) {
	key := stockKey{productID, pickupPointID}
	m.records[key] += delta
	return &domain.StockRecord{
		ProductID:     productID,
		PickupPointID: pickupPointID,
		Quantity:      m.records[key],
	}, nil
}

func (m *mockStockStore) Levels(_ context.Context, productID uuid.UUID) ([]domain.StockLevel, error) {
	var out []domain.StockLevel
	for key, qty := range m.records {
		if key.productID == productID {
			out = append(out, domain.StockLevel{PickupPointID: key.pickupPointID, Quantity: qty})
		}
	}
	return out, nil
}

// mockPublisher captures events instead of talking to RabbitMQ.
type mockPublisher struct {
	events []events.OrderEvent
	err    error
}

func (m *mockPublisher) PublishOrderEvent(event events.OrderEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

// mockNotificationStore serves NotificationService tests.
type mockNotificationStore struct {
	created []*domain.Notification
	updated []*domain.Notification
}

func (m *mockNotificationStore) Create(_ context.Context, n *domain.Notification) error {
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationStore) Update(_ context.Context, n *domain.Notification) error {
	m.updated = append(m.updated, n)
	return nil
}

// mockSender delivers or fails on command.
type mockSender struct {
	sent []*domain.Notification
	err  error
}

func (m *mockSender) Send(n *domain.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, n)
	return nil
}
