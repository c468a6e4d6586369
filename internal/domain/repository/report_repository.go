package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult agregados de ventas en un rango de fechas.
type SalesSummaryResult struct {
	TotalRevenue     decimal.Decimal
	TotalTax         decimal.Decimal
	TotalDiscount    decimal.Decimal
	TransactionCount int
}

// PaymentMethodResult ingresos agrupados por método de pago.
type PaymentMethodResult struct {
	PaymentMethod string
	Revenue       decimal.Decimal
	Count         int
}

// TopProductResult producto más vendido por unidades.
type TopProductResult struct {
	ProductID string
	Name      string
	SKU       string
	UnitsSold int
	Revenue   decimal.Decimal
}

// InventoryValuationResult valoración del inventario actual.
type InventoryValuationResult struct {
	ProductCount int
	TotalUnits   int
	CostValue    decimal.Decimal // Σ stock × costo
	RetailValue  decimal.Decimal // Σ stock × precio de venta
	LowStock     int             // productos bajo su umbral mínimo
	OutOfStock   int
}

// CategoryPerformanceResult desempeño de una categoría: ventas del rango más
// foto actual del inventario de sus productos.
type CategoryPerformanceResult struct {
	CategoryID   string
	Name         string
	ProductCount int
	UnitsSold    int
	Revenue      decimal.Decimal
	StockUnits   int
	StockValue   decimal.Decimal // Σ stock × costo
}

// DashboardCounts conteos generales para el tablero.
type DashboardCounts struct {
	Products   int
	Categories int
	Suppliers  int
	LowStock   int
}

// ReportRepository consultas de agregación de solo lectura (ventas, inventario, tablero).
type ReportRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
	SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]PaymentMethodResult, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
	CategoryPerformance(ctx context.Context, from, to time.Time) ([]CategoryPerformanceResult, error)
	InventoryValuation(ctx context.Context) (*InventoryValuationResult, error)
	Counts(ctx context.Context) (*DashboardCounts, error)
}
