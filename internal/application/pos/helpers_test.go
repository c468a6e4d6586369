package pos_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: catálogo, ventas y movimientos
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo catálogo en memoria. Guarda productos por ID.
type fakeProductRepo struct {
	products map[string]*entity.Product
	// stockWrites registra las llamadas a UpdateStock (productID -> stock final)
	stockWrites map[string]int
	// failUpdateStock fuerza un error en UpdateStock para probar el rollback
	failUpdateStock error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products:    make(map[string]*entity.Product),
		stockWrites: make(map[string]int),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == code || p.SKU == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, quantity int) error {
	if r.failUpdateStock != nil {
		return r.failUpdateStock
	}
	r.stockWrites[productID] = quantity
	if p, ok := r.products[productID]; ok {
		p.StockQuantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListAll() ([]*entity.Product, error)               { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                            { return nil }

// fakeSaleRepo acumula ventas y líneas creadas.
type fakeSaleRepo struct {
	sales []*entity.Sale
	items []*entity.SaleItem
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error          { r.sales = append(r.sales, s); return nil }
func (r *fakeSaleRepo) CreateItem(it *entity.SaleItem) error { r.items = append(r.items, it); return nil }
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *fakeSaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	return r.sales, nil
}

// fakeMovementRepo acumula movimientos de stock.
type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

// fakeTxRunner ejecuta el callback sin transacción real. Si el callback
// devuelve error, descarta las escrituras (simula el rollback reconstruyendo
// los repos vacíos en el siguiente intento).
type fakeTxRunner struct {
	products  *fakeProductRepo
	sales     *fakeSaleRepo
	movements *fakeMovementRepo
	err       error // último resultado del callback
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.err = fn(r.sales, r.movements, r.products)
	return r.err
}

// producto de catálogo listo para los tests del carrito.
func testProduct(id, name, sku, barcode string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          name,
		SKU:           sku,
		Barcode:       barcode,
		SellingPrice:  decimal.RequireFromString(price),
		StockQuantity: stock,
		MinStockLevel: 5,
		Unit:          "pcs",
	}
}
