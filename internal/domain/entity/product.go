package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU de la tienda.
// StockQuantity nunca se edita directamente: siempre vía StockMovement
// (venta, recepción de compra o ajuste manual).
type Product struct {
	ID            string
	Name          string
	SKU           string // código único
	Barcode       string // opcional, escaneable en el POS
	Description   string
	CategoryID    string
	SupplierID    string
	CostPrice     decimal.Decimal // costo de compra
	SellingPrice  decimal.Decimal // precio de venta
	StockQuantity int
	MinStockLevel int    // umbral de alerta de stock bajo
	Unit          string // pcs, kg, lt...
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el producto está por debajo de su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.StockQuantity < p.MinStockLevel
}
