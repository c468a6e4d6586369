package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada (recepción de compra, ajuste +)
	MovementTypeOut        = "out"        // salida (venta, ajuste -)
	MovementTypeAdjustment = "adjustment" // fija cantidad exacta
)

// Orígenes de un movimiento.
const (
	ReferenceTypeSale       = "sale"
	ReferenceTypePurchase   = "purchase"
	ReferenceTypeAdjustment = "adjustment"
)

// StockMovement registra un cambio de stock de un producto. El stock en
// products se actualiza en la misma transacción que inserta el movimiento.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // in, out, adjustment
	Quantity      int    // para adjustment: la cantidad exacta resultante
	ReferenceType string // sale, purchase, adjustment
	ReferenceID   string // ID de la venta u orden de compra
	Notes         string
	UserID        string
	CreatedAt     time.Time
}
