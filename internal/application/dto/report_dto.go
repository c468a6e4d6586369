package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportResponse reporte de ventas en un rango de fechas.
type SalesReportResponse struct {
	From               time.Time              `json:"from"`
	To                 time.Time              `json:"to"`
	TotalRevenue       decimal.Decimal        `json:"total_revenue"`
	TotalTax           decimal.Decimal        `json:"total_tax"`
	TotalDiscount      decimal.Decimal        `json:"total_discount"`
	TransactionCount   int                    `json:"transaction_count"`
	AverageTransaction decimal.Decimal        `json:"average_transaction"`
	ByPaymentMethod    []PaymentMethodReport  `json:"by_payment_method"`
	TopProducts        []TopProductReport     `json:"top_products"`
	Sales              []SaleResponse         `json:"sales,omitempty"`
}

// PaymentMethodReport ingresos por método de pago.
type PaymentMethodReport struct {
	PaymentMethod string          `json:"payment_method"`
	Revenue       decimal.Decimal `json:"revenue"`
	Count         int             `json:"count"`
	Share         decimal.Decimal `json:"share"` // porcentaje del total
}

// TopProductReport producto más vendido.
type TopProductReport struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryReportResponse desempeño por categoría en un rango de fechas.
type CategoryReportResponse struct {
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
	Categories []CategoryReport `json:"categories"`
}

// CategoryReport ventas e inventario de una categoría.
type CategoryReport struct {
	CategoryID   string          `json:"category_id"`
	Name         string          `json:"name"`
	ProductCount int             `json:"product_count"`
	UnitsSold    int             `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Share        decimal.Decimal `json:"share"` // porcentaje de los ingresos del rango
	StockUnits   int             `json:"stock_units"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// InventoryReportResponse reporte de valoración del inventario.
type InventoryReportResponse struct {
	ProductCount int               `json:"product_count"`
	TotalUnits   int               `json:"total_units"`
	CostValue    decimal.Decimal   `json:"cost_value"`
	RetailValue  decimal.Decimal   `json:"retail_value"`
	OutOfStock   int               `json:"out_of_stock"`
	LowStock     []ProductResponse `json:"low_stock"`
}

// DashboardResponse agregados del tablero principal.
type DashboardResponse struct {
	Products        int             `json:"products"`
	Categories      int             `json:"categories"`
	Suppliers       int             `json:"suppliers"`
	LowStock        int             `json:"low_stock"`
	RevenueToday    decimal.Decimal `json:"revenue_today"`
	Revenue30Days   decimal.Decimal `json:"revenue_30_days"`
	SalesToday      int             `json:"sales_today"`
	AverageSale     decimal.Decimal `json:"average_sale"`
	RecentSales     []SaleResponse  `json:"recent_sales"`
}
