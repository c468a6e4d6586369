package purchasing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/application/purchasing"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
)

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(*entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *fakeSupplierRepo) Update(*entity.Supplier) error     { return nil }
func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Delete(string) error               { return nil }

func newCreateFixture(products ...*entity.Product) (*purchasing.PurchaseUseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{
		purchases: newFakePurchaseRepo(nil, nil),
		products:  newFakeProductRepo(products...),
		movements: &fakeMovementRepo{},
	}
	suppliers := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Distribuidora Norte"},
	}}
	uc := purchasing.NewPurchaseUseCase(runner, runner.purchases, suppliers, runner.products, "PO")
	return uc, runner
}

func TestPurchaseCreate(t *testing.T) {
	uc, runner := newCreateFixture(
		&entity.Product{ID: "p1", CostPrice: decimal.RequireFromString("2.00")},
		&entity.Product{ID: "p2", CostPrice: decimal.RequireFromString("4.00")},
	)

	out, err := uc.Create(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "p1", Quantity: 10, UnitCost: decimal.RequireFromString("2.00")},
			{ProductID: "p2", Quantity: 5}, // costo en cero: toma el del producto
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusPending, out.Status)
	assert.Equal(t, "Distribuidora Norte", out.SupplierName)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("40.00")), "total = %s", out.TotalAmount)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[1].UnitCost.Equal(decimal.RequireFromString("4.00")))

	stored, err := runner.purchases.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, runner.purchases.items[out.ID], 2)
}

func TestPurchaseCreateItemFailureLeavesNoHeader(t *testing.T) {
	uc, runner := newCreateFixture(
		&entity.Product{ID: "p1", CostPrice: decimal.RequireFromString("2.00")},
		&entity.Product{ID: "p2", CostPrice: decimal.RequireFromString("4.00")},
	)
	boom := errors.New("insert falló")
	runner.purchases.failCreateItem = boom

	_, err := uc.Create(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "p1", Quantity: 10, UnitCost: decimal.RequireFromString("2.00")},
			{ProductID: "p2", Quantity: 5, UnitCost: decimal.RequireFromString("4.00")},
		},
	})
	require.ErrorIs(t, err, boom)

	// la transacción revierte todo: ni cabecera pendiente ni líneas sueltas
	assert.Empty(t, runner.purchases.purchases, "un fallo a mitad no deja una orden pendiente")
	assert.Empty(t, runner.purchases.items)
}

func TestPurchaseCreateUnknownSupplier(t *testing.T) {
	uc, _ := newCreateFixture()
	_, err := uc.Create(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "no-existe",
		Items:      []dto.CreatePurchaseItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseCreateValidation(t *testing.T) {
	uc, _ := newCreateFixture(&entity.Product{ID: "p1"})

	cases := []struct {
		name string
		in   dto.CreatePurchaseRequest
	}{
		{"sin proveedor", dto.CreatePurchaseRequest{Items: []dto.CreatePurchaseItemRequest{{ProductID: "p1", Quantity: 1}}}},
		{"sin líneas", dto.CreatePurchaseRequest{SupplierID: "sup-1"}},
		{"cantidad en cero", dto.CreatePurchaseRequest{SupplierID: "sup-1", Items: []dto.CreatePurchaseItemRequest{{ProductID: "p1"}}}},
		{"costo negativo", dto.CreatePurchaseRequest{SupplierID: "sup-1", Items: []dto.CreatePurchaseItemRequest{{ProductID: "p1", Quantity: 1, UnitCost: decimal.RequireFromString("-1")}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "user-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestPurchaseCancel(t *testing.T) {
	uc, runner := newCreateFixture()
	require.NoError(t, runner.purchases.Create(pendingPurchase()))

	require.NoError(t, uc.Cancel("po-1"))
	assert.Equal(t, entity.PurchaseStatusCancelled, runner.purchases.purchases["po-1"].Status)

	// terminal: cancelar de nuevo (o recibirla) es conflicto
	assert.ErrorIs(t, uc.Cancel("po-1"), domain.ErrConflict)
}
