package dto

import "time"

// AdjustStockRequest entrada para un ajuste manual de stock.
// Type "in"/"out" suman/restan Quantity; "adjustment" fija la cantidad exacta.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=in out adjustment"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// StockMovementResponse un movimiento de stock.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
