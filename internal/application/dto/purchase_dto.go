package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseItemRequest una línea de la orden de compra.
type CreatePurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest entrada para crear una orden de compra (estado pending).
type CreatePurchaseRequest struct {
	SupplierID string                      `json:"supplier_id" validate:"required"`
	Items      []CreatePurchaseItemRequest `json:"items" validate:"required,min=1"`
	Notes      string                      `json:"notes"`
}

// ReceiveItemRequest cantidad recibida de una línea. La cantidad se acota
// al rango [0, cantidad pedida] en el motor, no solo en la UI.
type ReceiveItemRequest struct {
	ItemID           string `json:"item_id" validate:"required"`
	ReceivedQuantity int    `json:"received_quantity"`
}

// ReceivePurchaseRequest entrada para recibir una orden pendiente.
// Las líneas no incluidas se reciben completas (comportamiento por defecto).
type ReceivePurchaseRequest struct {
	Items []ReceiveItemRequest `json:"items"`
	Notes string               `json:"notes"`
}

// PurchaseItemResponse una línea de orden de compra.
type PurchaseItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name,omitempty"`
	SKU              string          `json:"sku,omitempty"`
	Quantity         int             `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	ReceivedQuantity int             `json:"received_quantity"`
}

// PurchaseResponse salida de una orden de compra.
type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierID     string                 `json:"supplier_id"`
	SupplierName   string                 `json:"supplier_name,omitempty"`
	Status         string                 `json:"status"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	ReceivedValue  decimal.Decimal        `json:"received_value"`
	Notes          string                 `json:"notes,omitempty"`
	Items          []PurchaseItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// PurchaseListResponse lista paginada de órdenes de compra.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
