package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura (ventas, inventario, tablero).
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesSummary agrega ingresos, impuestos, descuentos y número de
// transacciones de ventas completadas en el rango de fechas.
func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(total_amount), 0)    AS total_revenue,
	    COALESCE(SUM(tax_amount), 0)      AS total_tax,
	    COALESCE(SUM(discount_amount), 0) AS total_discount,
	    COUNT(*)                          AS transaction_count
	FROM sales
	WHERE payment_status = 'completed'
	  AND created_at BETWEEN $1 AND $2`

	var res repository.SalesSummaryResult
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&res.TotalRevenue, &res.TotalTax, &res.TotalDiscount, &res.TransactionCount,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesSummary: %w", err)
	}
	return &res, nil
}

// SalesByPaymentMethod agrupa ingresos por método de pago en el rango.
func (r *ReportRepo) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]repository.PaymentMethodResult, error) {
	const query = `
	SELECT
	    payment_method,
	    COALESCE(SUM(total_amount), 0) AS revenue,
	    COUNT(*)                       AS sale_count
	FROM sales
	WHERE payment_status = 'completed'
	  AND created_at BETWEEN $1 AND $2
	GROUP BY payment_method
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByPaymentMethod: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentMethodResult
	for rows.Next() {
		var row repository.PaymentMethodResult
		if err := rows.Scan(&row.PaymentMethod, &row.Revenue, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.SalesByPaymentMethod scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopProducts lista los productos más vendidos por unidades en el rango.
func (r *ReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    p.sku,
	    SUM(si.quantity)                  AS units_sold,
	    COALESCE(SUM(si.total_price), 0)  AS revenue
	FROM sale_items si
	JOIN sales s    ON s.id = si.sale_id
	JOIN products p ON p.id = si.product_id
	WHERE s.payment_status = 'completed'
	  AND s.created_at BETWEEN $1 AND $2
	GROUP BY p.id, p.name, p.sku
	ORDER BY units_sold DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.SKU, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CategoryPerformance agrega por categoría las ventas del rango y la foto
// actual del inventario de sus productos, ordenado por ingresos.
func (r *ReportRepo) CategoryPerformance(ctx context.Context, from, to time.Time) ([]repository.CategoryPerformanceResult, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    COALESCE(inv.product_count, 0) AS product_count,
	    COALESCE(ven.units_sold, 0)    AS units_sold,
	    COALESCE(ven.revenue, 0)       AS revenue,
	    COALESCE(inv.stock_units, 0)   AS stock_units,
	    COALESCE(inv.stock_value, 0)   AS stock_value
	FROM categories c
	LEFT JOIN (
	    SELECT category_id,
	           COUNT(*)                          AS product_count,
	           SUM(stock_quantity)               AS stock_units,
	           SUM(stock_quantity * cost_price)  AS stock_value
	    FROM products
	    GROUP BY category_id
	) inv ON inv.category_id = c.id
	LEFT JOIN (
	    SELECT p.category_id,
	           SUM(si.quantity)    AS units_sold,
	           SUM(si.total_price) AS revenue
	    FROM sale_items si
	    JOIN sales s    ON s.id = si.sale_id
	    JOIN products p ON p.id = si.product_id
	    WHERE s.payment_status = 'completed'
	      AND s.created_at BETWEEN $1 AND $2
	    GROUP BY p.category_id
	) ven ON ven.category_id = c.id
	ORDER BY revenue DESC, c.name ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.CategoryPerformance: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryPerformanceResult
	for rows.Next() {
		var row repository.CategoryPerformanceResult
		if err := rows.Scan(
			&row.CategoryID, &row.Name, &row.ProductCount,
			&row.UnitsSold, &row.Revenue, &row.StockUnits, &row.StockValue,
		); err != nil {
			return nil, fmt.Errorf("reports.CategoryPerformance scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// InventoryValuation valora el inventario actual a costo y a precio de venta.
func (r *ReportRepo) InventoryValuation(ctx context.Context) (*repository.InventoryValuationResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS product_count,
	    COALESCE(SUM(stock_quantity), 0)                                  AS total_units,
	    COALESCE(SUM(stock_quantity * cost_price), 0)                     AS cost_value,
	    COALESCE(SUM(stock_quantity * selling_price), 0)                  AS retail_value,
	    COUNT(*) FILTER (WHERE stock_quantity < min_stock_level)          AS low_stock,
	    COUNT(*) FILTER (WHERE stock_quantity = 0)                        AS out_of_stock
	FROM products`

	var res repository.InventoryValuationResult
	err := r.pool.QueryRow(ctx, query).Scan(
		&res.ProductCount, &res.TotalUnits, &res.CostValue, &res.RetailValue,
		&res.LowStock, &res.OutOfStock,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.InventoryValuation: %w", err)
	}
	return &res, nil
}

// Counts devuelve los conteos generales del tablero.
func (r *ReportRepo) Counts(ctx context.Context) (*repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)                                          AS products,
	    (SELECT COUNT(*) FROM categories)                                        AS categories,
	    (SELECT COUNT(*) FROM suppliers)                                         AS suppliers,
	    (SELECT COUNT(*) FROM products WHERE stock_quantity < min_stock_level)   AS low_stock`

	var res repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query).Scan(&res.Products, &res.Categories, &res.Suppliers, &res.LowStock)
	if err != nil {
		return nil, fmt.Errorf("reports.Counts: %w", err)
	}
	return &res, nil
}
