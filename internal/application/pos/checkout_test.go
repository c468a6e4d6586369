package pos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/application/pos"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
)

func newCheckoutFixture(products ...*entity.Product) (*pos.CheckoutUseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{
		products:  newFakeProductRepo(products...),
		sales:     &fakeSaleRepo{},
		movements: &fakeMovementRepo{},
	}
	return pos.NewCheckoutUseCase(runner, "SALE"), runner
}

func TestCheckoutCashWithChange(t *testing.T) {
	// carrito: 2×40 + 2×10 = 100; impuesto 10 → total 110; recibido 150 → cambio 40
	uc, runner := newCheckoutFixture(
		testProduct("p1", "Café", "CAFE-001", "", "40.00", 10),
		testProduct("p2", "Pan", "PAN-001", "", "10.00", 10),
	)

	out, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 2},
		},
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.RequireFromString("150.00"),
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, out.TaxAmount.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("110.00")))
	assert.True(t, out.ChangeAmount.Equal(decimal.RequireFromString("40.00")), "cambio = %s", out.ChangeAmount)
	assert.Equal(t, entity.PaymentStatusCompleted, out.PaymentStatus)
	assert.Len(t, out.Items, 2)

	// efectos: venta + 2 líneas + 2 movimientos OUT + stock descontado
	require.Len(t, runner.sales.sales, 1)
	require.Len(t, runner.sales.items, 2)
	require.Len(t, runner.movements.movements, 2)
	for _, m := range runner.movements.movements {
		assert.Equal(t, entity.MovementTypeOut, m.Type)
		assert.Equal(t, entity.ReferenceTypeSale, m.ReferenceType)
		assert.Equal(t, runner.sales.sales[0].ID, m.ReferenceID)
	}
	assert.Equal(t, 8, runner.products.stockWrites["p1"])
	assert.Equal(t, 8, runner.products.stockWrites["p2"])
}

func TestCheckoutCashInsufficientPayment(t *testing.T) {
	// total 110, descuento 10 → a pagar 100; recibido 50 → rechazado
	uc, runner := newCheckoutFixture(
		testProduct("p1", "Café", "CAFE-001", "", "50.00", 10),
	)

	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:          []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod:  entity.PaymentMethodCash,
		DiscountAmount: decimal.RequireFromString("10.00"),
		AmountReceived: decimal.RequireFromString("50.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)

	// nada se escribió
	assert.Empty(t, runner.sales.sales)
	assert.Empty(t, runner.movements.movements)
	assert.Empty(t, runner.products.stockWrites)
}

func TestCheckoutDiscountAppliesAfterTax(t *testing.T) {
	uc, _ := newCheckoutFixture(
		testProduct("p1", "Café", "CAFE-001", "", "100.00", 10),
	)

	out, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:          []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod:  entity.PaymentMethodCash,
		DiscountAmount: decimal.RequireFromString("10.00"),
		AmountReceived: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	// subtotal 100 + impuesto 10 - descuento 10 = 100 exactos
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, out.ChangeAmount.IsZero())
}

func TestCheckoutNonCashIgnoresAmountReceived(t *testing.T) {
	uc, _ := newCheckoutFixture(
		testProduct("p1", "Café", "CAFE-001", "", "10.00", 10),
	)

	out, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.True(t, out.AmountReceived.Equal(out.TotalAmount), "tarjeta cobra el total exacto")
	assert.True(t, out.ChangeAmount.IsZero())
}

func TestCheckoutRejectsOverStock(t *testing.T) {
	uc, runner := newCheckoutFixture(
		testProduct("p1", "Café", "CAFE-001", "", "10.00", 3),
	)

	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:          []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 5}},
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.RequireFromString("100.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, runner.sales.sales)
}

func TestCheckoutAccumulatesDuplicateLines(t *testing.T) {
	uc, runner := newCheckoutFixture(
		testProduct("p1", "Café", "CAFE-001", "", "10.00", 10),
	)

	out, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 3},
		},
		PaymentMethod:  entity.PaymentMethodCash,
		AmountReceived: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "el mismo producto consolida en una línea")
	assert.Equal(t, 5, out.Items[0].Quantity)
	assert.Equal(t, 5, runner.products.stockWrites["p1"])
}

func TestCheckoutValidation(t *testing.T) {
	uc, _ := newCheckoutFixture(testProduct("p1", "Café", "CAFE-001", "", "10.00", 10))
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CheckoutRequest
	}{
		{"sin items", dto.CheckoutRequest{PaymentMethod: entity.PaymentMethodCash}},
		{"método inválido", dto.CheckoutRequest{
			Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
			PaymentMethod: "crypto",
		}},
		{"descuento negativo", dto.CheckoutRequest{
			Items:          []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
			PaymentMethod:  entity.PaymentMethodCash,
			DiscountAmount: decimal.RequireFromString("-1"),
		}},
		{"cantidad cero", dto.CheckoutRequest{
			Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 0}},
			PaymentMethod: entity.PaymentMethodCash,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Checkout(ctx, "user-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCheckoutUnknownProduct(t *testing.T) {
	uc, _ := newCheckoutFixture()
	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "fantasma", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckoutPropagatesWriteFailure(t *testing.T) {
	// Si UpdateStock falla a mitad de camino, el caso de uso devuelve el error
	// y el runner (transaccional en producción) revierte todo el conjunto.
	boom := errors.New("conexión perdida")
	uc, runner := newCheckoutFixture(
		testProduct("p1", "Café", "CAFE-001", "", "10.00", 10),
	)
	runner.products.failUpdateStock = boom

	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, runner.err, boom, "el error sale del callback y dispara el rollback")
}
