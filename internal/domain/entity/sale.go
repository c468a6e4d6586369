package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en el POS.
const (
	PaymentMethodCash    = "cash"
	PaymentMethodCard    = "card"
	PaymentMethodDigital = "digital"
)

// Estados de pago de una venta.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

// Sale representa la cabecera de una venta del POS.
// TotalAmount es el total final después de descuento (Subtotal + TaxAmount - DiscountAmount).
type Sale struct {
	ID             string
	SaleNumber     string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string // cash, card, digital
	PaymentStatus  string
	AmountReceived decimal.Decimal // solo efectivo
	ChangeAmount   decimal.Decimal // solo efectivo
	UserID         string
	CreatedAt      time.Time
}

// SaleItem representa una línea de venta.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}
