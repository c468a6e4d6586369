package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/application/purchasing"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePurchaseRepo struct {
	purchases map[string]*entity.Purchase
	items     map[string][]*entity.PurchaseItem
	received  map[string]int // itemID -> cantidad recibida persistida

	failCreateItem error // si se fija, CreateItem falla a partir de la segunda línea
}

func newFakePurchaseRepo(p *entity.Purchase, items []*entity.PurchaseItem) *fakePurchaseRepo {
	r := &fakePurchaseRepo{
		purchases: map[string]*entity.Purchase{},
		items:     map[string][]*entity.PurchaseItem{},
		received:  map[string]int{},
	}
	if p != nil {
		r.purchases[p.ID] = p
		r.items[p.ID] = items
	}
	return r
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	r.purchases[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) CreateItem(it *entity.PurchaseItem) error {
	if r.failCreateItem != nil && len(r.items[it.PurchaseID]) > 0 {
		return r.failCreateItem
	}
	r.items[it.PurchaseID] = append(r.items[it.PurchaseID], it)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error) {
	return r.items[purchaseID], nil
}

func (r *fakePurchaseRepo) List(status string, limit, offset int) ([]*entity.Purchase, error) {
	return nil, nil
}

func (r *fakePurchaseRepo) UpdateStatus(id, fromStatus, toStatus string) error {
	p, ok := r.purchases[id]
	if !ok || p.Status != fromStatus {
		return domain.ErrConflict
	}
	p.Status = toStatus
	return nil
}

func (r *fakePurchaseRepo) UpdateItemReceived(itemID string, receivedQuantity int) error {
	r.received[itemID] = receivedQuantity
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	stocks   map[string]int // escrituras de UpdateStock
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}, stocks: map[string]int{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) UpdateStock(productID string, quantity int) error {
	r.stocks[productID] = quantity
	if p, ok := r.products[productID]; ok {
		p.StockQuantity = quantity
	}
	return nil
}
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListAll() ([]*entity.Product, error)               { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                            { return nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) List(*time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeTxRunner struct {
	purchases *fakePurchaseRepo
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

// RunPurchase imita Commit/Rollback: si fn falla, restaura el estado previo de
// los repos para que las escrituras parciales no queden visibles.
func (r *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapPurchases := map[string]*entity.Purchase{}
	for id, p := range r.purchases.purchases {
		cp := *p
		snapPurchases[id] = &cp
	}
	snapItems := map[string][]*entity.PurchaseItem{}
	for id, items := range r.purchases.items {
		snapItems[id] = append([]*entity.PurchaseItem(nil), items...)
	}
	snapReceived := map[string]int{}
	for id, q := range r.purchases.received {
		snapReceived[id] = q
	}
	snapMovements := append([]*entity.StockMovement(nil), r.movements.movements...)

	err := fn(r.purchases, r.movements, r.products)
	if err != nil {
		r.purchases.purchases = snapPurchases
		r.purchases.items = snapItems
		r.purchases.received = snapReceived
		r.movements.movements = snapMovements
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveOrderUseCase
// ──────────────────────────────────────────────────────────────────────────────

func newReceiveFixture(p *entity.Purchase, items []*entity.PurchaseItem, products ...*entity.Product) (*purchasing.ReceiveOrderUseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{
		purchases: newFakePurchaseRepo(p, items),
		products:  newFakeProductRepo(products...),
		movements: &fakeMovementRepo{},
	}
	return purchasing.NewReceiveOrderUseCase(runner, runner.purchases), runner
}

func TestReceiveOrderFull(t *testing.T) {
	uc, runner := newReceiveFixture(pendingPurchase(), purchaseItems(),
		&entity.Product{ID: "p1", StockQuantity: 5},
		&entity.Product{ID: "p2", StockQuantity: 0},
	)

	out, err := uc.Receive(context.Background(), "user-1", "po-1", dto.ReceivePurchaseRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusReceived, out.Status)
	assert.True(t, out.ReceivedValue.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, entity.PurchaseStatusReceived, runner.purchases.purchases["po-1"].Status)

	// stock sumado: p1 5+10=15, p2 0+5=5
	assert.Equal(t, 15, runner.products.stocks["p1"])
	assert.Equal(t, 5, runner.products.stocks["p2"])
	require.Len(t, runner.movements.movements, 2)
	assert.Equal(t, 10, runner.purchases.received["it-1"])
	assert.Equal(t, 5, runner.purchases.received["it-2"])
}

func TestReceiveOrderPartial(t *testing.T) {
	uc, runner := newReceiveFixture(pendingPurchase(), purchaseItems(),
		&entity.Product{ID: "p1", StockQuantity: 0},
		&entity.Product{ID: "p2", StockQuantity: 0},
	)

	out, err := uc.Receive(context.Background(), "user-1", "po-1", dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: "it-2", ReceivedQuantity: 3},
		},
		Notes: "faltaron dos cajas",
	})
	require.NoError(t, err)

	// it-1 no mencionado: se recibe completo (10); it-2 parcial (3)
	assert.True(t, out.ReceivedValue.Equal(decimal.RequireFromString("32.00")))
	assert.Equal(t, 10, runner.products.stocks["p1"])
	assert.Equal(t, 3, runner.products.stocks["p2"])
	assert.Equal(t, 3, runner.purchases.received["it-2"])
	require.Len(t, runner.movements.movements, 2)
	assert.Contains(t, runner.movements.movements[0].Notes, "faltaron dos cajas")
}

func TestReceiveOrderZeroLineProducesNoMovement(t *testing.T) {
	uc, runner := newReceiveFixture(pendingPurchase(), purchaseItems(),
		&entity.Product{ID: "p1", StockQuantity: 0},
		&entity.Product{ID: "p2", StockQuantity: 0},
	)

	_, err := uc.Receive(context.Background(), "user-1", "po-1", dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: "it-1", ReceivedQuantity: 0}},
	})
	require.NoError(t, err)

	require.Len(t, runner.movements.movements, 1)
	assert.Equal(t, "p2", runner.movements.movements[0].ProductID)
	_, touched := runner.products.stocks["p1"]
	assert.False(t, touched, "una línea en cero no toca el stock")
	assert.Equal(t, 0, runner.purchases.received["it-1"], "la cantidad cero sí se persiste en la línea")
}

func TestReceiveOrderNonPendingConflict(t *testing.T) {
	p := pendingPurchase()
	p.Status = entity.PurchaseStatusReceived
	uc, runner := newReceiveFixture(p, purchaseItems())

	_, err := uc.Receive(context.Background(), "user-1", "po-1", dto.ReceivePurchaseRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, runner.movements.movements)
}

func TestReceiveOrderNotFound(t *testing.T) {
	uc, _ := newReceiveFixture(nil, nil)
	_, err := uc.Receive(context.Background(), "user-1", "no-existe", dto.ReceivePurchaseRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiveOrderUnknownItem(t *testing.T) {
	uc, runner := newReceiveFixture(pendingPurchase(), purchaseItems())
	_, err := uc.Receive(context.Background(), "user-1", "po-1", dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: "fantasma", ReceivedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.PurchaseStatusPending, runner.purchases.purchases["po-1"].Status,
		"una línea desconocida aborta antes de la transición")
}
