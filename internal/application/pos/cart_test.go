package pos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfonseca/stockmanager-api/internal/application/pos"
	"github.com/dfonseca/stockmanager-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Totales: subtotal, impuesto 10% fijo, total
// ──────────────────────────────────────────────────────────────────────────────

func TestCartTotals(t *testing.T) {
	cafe := testProduct("p1", "Café", "CAFE-001", "750100001", "40.00", 10)
	pan := testProduct("p2", "Pan", "PAN-001", "750100002", "10.00", 10)

	cart := pos.NewCart()
	require.NoError(t, cart.AddItem(cafe))
	require.NoError(t, cart.UpdateQuantity(cafe, 2)) // 80.00
	require.NoError(t, cart.AddItem(pan))
	require.NoError(t, cart.UpdateQuantity(pan, 2)) // 20.00

	totals := cart.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("10.00")), "tax = %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("110.00")), "total = %s", totals.Total)
}

func TestCartTotalsInvariant(t *testing.T) {
	// total == subtotal × 1.10 para cualquier contenido del carrito
	mult := decimal.RequireFromString("1.10")
	products := []struct {
		price string
		qty   int
	}{
		{"3.99", 7},
		{"0.01", 3},
		{"129.50", 1},
	}

	cart := pos.NewCart()
	for i, tc := range products {
		p := testProduct(string(rune('a'+i)), "P", "SKU", "", tc.price, 100)
		require.NoError(t, cart.AddItem(p))
		require.NoError(t, cart.UpdateQuantity(p, tc.qty))
	}

	totals := cart.Totals()
	assert.True(t, totals.Total.Equal(totals.Subtotal.Mul(mult)),
		"total %s debe ser subtotal %s × 1.10", totals.Total, totals.Subtotal)
	assert.True(t, totals.Tax.Equal(totals.Subtotal.Mul(pos.TaxRate)))
}

func TestCartEmptyTotalsAreZero(t *testing.T) {
	cart := pos.NewCart()
	totals := cart.Totals()
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.True(t, cart.IsEmpty())
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones: add, update, remove, clear
// ──────────────────────────────────────────────────────────────────────────────

func TestCartAddIncrementsExistingLine(t *testing.T) {
	p := testProduct("p1", "Café", "CAFE-001", "", "5.00", 10)
	cart := pos.NewCart()

	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))

	lines := cart.Lines()
	require.Len(t, lines, 1, "el mismo producto no duplica líneas")
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, lines[0].Total.Equal(decimal.RequireFromString("15.00")))
}

func TestCartAddKeepsCapturedUnitPrice(t *testing.T) {
	// El catálogo cambia de precio entre un add y el siguiente: la línea
	// conserva el precio capturado y Total = Quantity × UnitPrice se mantiene.
	p := testProduct("p1", "Café", "CAFE-001", "", "5.00", 10)
	cart := pos.NewCart()
	require.NoError(t, cart.AddItem(p))

	reprecio := testProduct("p1", "Café", "CAFE-001", "", "6.00", 10)
	require.NoError(t, cart.AddItem(reprecio))

	line, ok := cart.Line("p1")
	require.True(t, ok)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, line.Total.Equal(decimal.RequireFromString("10.00")), "total = %s", line.Total)
	assert.True(t, line.Total.Equal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))))
}

func TestCartAddRejectsWithoutStock(t *testing.T) {
	sinStock := testProduct("p1", "Agotado", "AGO-001", "", "5.00", 0)
	cart := pos.NewCart()

	err := cart.AddItem(sinStock)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, cart.IsEmpty())
}

func TestCartAddStockGateIsIdempotent(t *testing.T) {
	// Con stock 2: dos adds entran, el tercero rechaza y deja el estado intacto
	p := testProduct("p1", "Café", "CAFE-001", "", "5.00", 2)
	cart := pos.NewCart()

	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))

	for i := 0; i < 3; i++ {
		err := cart.AddItem(p)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	line, ok := cart.Line("p1")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity, "los rechazos repetidos no cambian la cantidad")
}

func TestCartUpdateQuantity(t *testing.T) {
	p := testProduct("p1", "Café", "CAFE-001", "", "4.00", 10)
	cart := pos.NewCart()
	require.NoError(t, cart.AddItem(p))

	require.NoError(t, cart.UpdateQuantity(p, 7))
	line, _ := cart.Line("p1")
	assert.Equal(t, 7, line.Quantity)
	assert.True(t, line.Total.Equal(decimal.RequireFromString("28.00")))

	// por encima del stock: rechaza sin tocar la línea
	err := cart.UpdateQuantity(p, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	line, _ = cart.Line("p1")
	assert.Equal(t, 7, line.Quantity)

	// cero o negativo elimina la línea
	require.NoError(t, cart.UpdateQuantity(p, 0))
	assert.True(t, cart.IsEmpty())
}

func TestCartUpdateQuantityUnknownProduct(t *testing.T) {
	p := testProduct("p1", "Café", "CAFE-001", "", "4.00", 10)
	cart := pos.NewCart()
	err := cart.UpdateQuantity(p, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartAddRemoveIsInvertible(t *testing.T) {
	a := testProduct("p1", "A", "A-001", "", "9.99", 5)
	b := testProduct("p2", "B", "B-001", "", "1.50", 5)

	cart := pos.NewCart()
	require.NoError(t, cart.AddItem(a))
	before := cart.Totals()

	require.NoError(t, cart.AddItem(b))
	cart.RemoveItem("p2")

	after := cart.Totals()
	assert.True(t, before.Subtotal.Equal(after.Subtotal))
	assert.True(t, before.Total.Equal(after.Total))
	assert.Len(t, cart.Lines(), 1)
}

func TestCartClear(t *testing.T) {
	p := testProduct("p1", "Café", "CAFE-001", "", "4.00", 10)
	cart := pos.NewCart()
	require.NoError(t, cart.AddItem(p))
	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Totals().Total.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// CartService: búsqueda por código (escáner)
// ──────────────────────────────────────────────────────────────────────────────

func TestCartServiceAddByCode(t *testing.T) {
	repo := newFakeProductRepo(
		testProduct("p1", "Café", "CAFE-001", "7501001234", "4.00", 10),
	)
	svc := pos.NewCartService(repo)

	// por barcode
	p, err := svc.AddByCode("7501001234")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	// por SKU (coincidencia exacta)
	_, err = svc.AddByCode("CAFE-001")
	require.NoError(t, err)

	line, ok := svc.Cart().Line("p1")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestCartServiceAddByCodeMissLeavesCartUntouched(t *testing.T) {
	repo := newFakeProductRepo(
		testProduct("p1", "Café", "CAFE-001", "7501001234", "4.00", 10),
	)
	svc := pos.NewCartService(repo)
	require.NoError(t, svc.AddByID("p1"))
	before := svc.Totals()

	_, err := svc.AddByCode("NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after := svc.Totals()
	assert.True(t, before.Total.Equal(after.Total), "un código sin match no toca el carrito")
	assert.Len(t, svc.Cart().Lines(), 1)
}

func TestCartServiceAddByCodeEmptyNeverMatches(t *testing.T) {
	// Producto con barcode almacenado como cadena vacía: un escaneo vacío no
	// debe resolverlo.
	repo := newFakeProductRepo(
		testProduct("p1", "Café", "CAFE-001", "", "4.00", 10),
	)
	svc := pos.NewCartService(repo)

	_, err := svc.AddByCode("")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, svc.Cart().IsEmpty())
}

func TestCartServiceAddByCodeIsCaseSensitive(t *testing.T) {
	repo := newFakeProductRepo(
		testProduct("p1", "Café", "CAFE-001", "", "4.00", 10),
	)
	svc := pos.NewCartService(repo)

	_, err := svc.AddByCode("cafe-001")
	assert.ErrorIs(t, err, domain.ErrNotFound, "la búsqueda es exacta, sin normalizar mayúsculas")
}
