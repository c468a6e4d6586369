package pos

import (
	"context"

	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cabecera, líneas, movimientos y
// actualización de stock se confirmen o reviertan como una sola unidad.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptGenerator genera el recibo imprimible de una venta (PDF).
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem, products map[string]*entity.Product) ([]byte, error)
}
