// Package export serializa reportes a formatos descargables (CSV).
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/application/reports"
)

var _ reports.CSVEncoder = (*CSVExporter)(nil)

// CSVExporter implementa reports.CSVEncoder con encoding/csv.
// El archivo lleva secciones separadas por una fila en blanco: resumen de
// ventas, ventas por método de pago, productos más vendidos, desempeño por
// categoría, valoración de inventario, stock bajo y catálogo completo.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// Encode serializa el reporte integral a CSV.
func (e *CSVExporter) Encode(report *dto.ExportReportResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Report", report.ReportName},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{"Period", report.Sales.From.Format("2006-01-02"), report.Sales.To.Format("2006-01-02")},
		{},
		{"SALES SUMMARY"},
		{"Total Revenue", report.Sales.TotalRevenue.StringFixed(2)},
		{"Total Tax", report.Sales.TotalTax.StringFixed(2)},
		{"Total Discount", report.Sales.TotalDiscount.StringFixed(2)},
		{"Transactions", strconv.Itoa(report.Sales.TransactionCount)},
		{"Average Transaction", report.Sales.AverageTransaction.StringFixed(2)},
		{},
		{"SALES BY PAYMENT METHOD"},
		{"Method", "Revenue", "Count", "Share %"},
	}
	for _, m := range report.Sales.ByPaymentMethod {
		records = append(records, []string{
			m.PaymentMethod, m.Revenue.StringFixed(2), strconv.Itoa(m.Count), m.Share.String(),
		})
	}

	records = append(records,
		[]string{},
		[]string{"TOP PRODUCTS"},
		[]string{"SKU", "Name", "Units Sold", "Revenue"},
	)
	for _, t := range report.Sales.TopProducts {
		records = append(records, []string{
			t.SKU, t.Name, strconv.Itoa(t.UnitsSold), t.Revenue.StringFixed(2),
		})
	}

	records = append(records,
		[]string{},
		[]string{"CATEGORY PERFORMANCE"},
		[]string{"Category", "Products", "Units Sold", "Revenue", "Share %", "Stock Units", "Stock Value"},
	)
	for _, c := range report.Categories.Categories {
		records = append(records, []string{
			c.Name, strconv.Itoa(c.ProductCount), strconv.Itoa(c.UnitsSold),
			c.Revenue.StringFixed(2), c.Share.String(),
			strconv.Itoa(c.StockUnits), c.StockValue.StringFixed(2),
		})
	}

	records = append(records,
		[]string{},
		[]string{"INVENTORY VALUATION"},
		[]string{"Products", strconv.Itoa(report.Inventory.ProductCount)},
		[]string{"Total Units", strconv.Itoa(report.Inventory.TotalUnits)},
		[]string{"Cost Value", report.Inventory.CostValue.StringFixed(2)},
		[]string{"Retail Value", report.Inventory.RetailValue.StringFixed(2)},
		[]string{"Out Of Stock", strconv.Itoa(report.Inventory.OutOfStock)},
		[]string{},
		[]string{"LOW STOCK"},
		[]string{"SKU", "Name", "Stock", "Min Level", "Unit"},
	)
	for _, p := range report.Inventory.LowStock {
		records = append(records, []string{
			p.SKU, p.Name, strconv.Itoa(p.StockQuantity), strconv.Itoa(p.MinStockLevel), p.Unit,
		})
	}

	records = append(records,
		[]string{},
		[]string{"PRODUCTS"},
		[]string{"SKU", "Barcode", "Name", "Cost Price", "Selling Price", "Stock", "Min Level", "Unit", "Low Stock"},
	)
	for _, p := range report.Products {
		records = append(records, []string{
			p.SKU, p.Barcode, p.Name, p.CostPrice.StringFixed(2), p.SellingPrice.StringFixed(2),
			strconv.Itoa(p.StockQuantity), strconv.Itoa(p.MinStockLevel), p.Unit,
			strconv.FormatBool(p.LowStock),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	return buf.Bytes(), nil
}
