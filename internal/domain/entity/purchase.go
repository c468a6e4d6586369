package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. Solo pending admite mutaciones;
// received y cancelled son terminales.
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase representa una orden de compra a un proveedor.
type Purchase struct {
	ID             string
	PurchaseNumber string
	SupplierID     string
	Status         string // pending, received, cancelled
	TotalAmount    decimal.Decimal
	Notes          string
	UserID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PurchaseItem representa una línea de orden de compra.
// Quantity (pedida) y UnitCost son inmutables después de crear la orden;
// ReceivedQuantity se fija al recibir la orden, acotado a [0, Quantity].
type PurchaseItem struct {
	ID               string
	PurchaseID       string
	ProductID        string
	Quantity         int // cantidad pedida
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
	ReceivedQuantity int
}
