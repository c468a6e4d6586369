package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest una línea del carrito al momento del cobro.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CartPreviewRequest contenido actual del carrito más, opcionalmente, un
// código escaneado (barcode o SKU) que agrega una unidad.
type CartPreviewRequest struct {
	Items []CheckoutItemRequest `json:"items"`
	Code  string                `json:"code"`
}

// CartLineResponse una línea del carrito con su total.
type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CartPreviewResponse carrito validado contra el catálogo, con totales.
type CartPreviewResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
}

// CheckoutRequest entrada del cobro del POS. AmountReceived solo aplica a efectivo.
type CheckoutRequest struct {
	Items          []CheckoutItemRequest `json:"items" validate:"required,min=1"`
	CustomerName   string                `json:"customer_name"`
	CustomerEmail  string                `json:"customer_email"`
	CustomerPhone  string                `json:"customer_phone"`
	PaymentMethod  string                `json:"payment_method" validate:"required,oneof=cash card digital"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	AmountReceived decimal.Decimal       `json:"amount_received"`
}

// SaleItemResponse una línea vendida.
type SaleItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleResponse salida de una venta (recibo).
type SaleResponse struct {
	ID             string             `json:"id"`
	SaleNumber     string             `json:"sale_number"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CustomerEmail  string             `json:"customer_email,omitempty"`
	CustomerPhone  string             `json:"customer_phone,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentStatus  string             `json:"payment_status"`
	AmountReceived decimal.Decimal    `json:"amount_received"`
	ChangeAmount   decimal.Decimal    `json:"change_amount"`
	Items          []SaleItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
